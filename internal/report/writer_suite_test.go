package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/gubarz/blockaudit/internal/analyzer"
	"github.com/gubarz/blockaudit/internal/parser"
	"github.com/gubarz/blockaudit/internal/report"
)

func TestWriters(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Writer Suite")
}

func sampleReport() *report.Report {
	return report.Build([]report.Entry{
		{
			Block: parser.CodeBlock{
				StartLine:      12,
				EndLine:        20,
				Language:       "python",
				Content:        "rate = self.get_threshold()",
				LineCount:      7,
				HeadingPath:    []string{"Design", "Burn <b>Rates</b>"},
				SectionHeading: "Burn <b>Rates</b>",
			},
			Issues: []analyzer.Issue{{
				Type:     analyzer.UndefinedMethod,
				Severity: analyzer.High,
				Message:  "Method 'get_threshold' is called but not defined in this class",
				Location: "see calls to get_threshold",
			}},
		},
		{
			Block: parser.CodeBlock{
				StartLine:      30,
				EndLine:        33,
				Language:       "python",
				Content:        "def f():\n    pass",
				LineCount:      2,
				HeadingPath:    []string{"Appendix"},
				SectionHeading: "Appendix",
			},
			Issues: []analyzer.Issue{{
				Type:     analyzer.MissingDocstring,
				Severity: analyzer.Low,
				Message:  "Function 'f' is missing a docstring",
				Location: "line 1",
			}},
		},
		{
			Block: parser.CodeBlock{StartLine: 40, EndLine: 42, Language: "plain", LineCount: 1, SectionHeading: parser.NoHeading},
		},
	})
}

var _ = Describe("Report writers", func() {
	var (
		buf  *bytes.Buffer
		data *report.Report
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		data = sampleReport()
	})

	Context("text", func() {
		It("prints every report section", func() {
			Expect(report.WriteText(buf, data, nil)).To(Succeed())

			out := buf.String()
			Expect(out).To(ContainSubstring("CODE BLOCK VALIDATION REPORT"))
			Expect(out).To(ContainSubstring("Total code blocks: 3"))
			Expect(out).To(ContainSubstring("Blocks with issues: 2"))
			Expect(out).To(ContainSubstring("Total issues found: 2"))
			Expect(out).To(ContainSubstring("**Code Block** (lines 12-20, python, 7 lines)"))
			Expect(out).To(ContainSubstring("**Full Path:** Design > Burn <b>Rates</b>"))
			Expect(out).To(ContainSubstring("🔴 [HIGH] undefined_method"))
			Expect(out).To(ContainSubstring("Location: see calls to get_threshold"))
			Expect(out).To(ContainSubstring("undefined_method: 1"))
			Expect(out).To(ContainSubstring("    - [high] undefined_method: Method 'get_threshold'"))
		})

		It("orders sections by heading", func() {
			Expect(report.WriteText(buf, data, report.Plain)).To(Succeed())
			out := buf.String()
			Expect(strings.Index(out, "## Appendix")).To(BeNumerically("<", strings.Index(out, "## Burn")))
		})

		It("keeps one-low blocks out of the refactor list", func() {
			Expect(report.WriteText(buf, data, nil)).To(Succeed())
			refactor := buf.String()[strings.Index(buf.String(), "CODE BLOCKS REQUIRING REFACTORING"):]
			Expect(refactor).To(ContainSubstring("Lines: 12-20"))
			Expect(refactor).NotTo(ContainSubstring("Lines: 30-33"))
		})

		It("reports when nothing needs refactoring", func() {
			Expect(report.WriteText(buf, report.Build(nil), nil)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("No code blocks require urgent refactoring."))
		})
	})

	Context("markdown and html", func() {
		It("writes a smell table with rule descriptions", func() {
			Expect(report.WriteMarkdown(buf, data)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("| `undefined_method` | 1 |"))
			Expect(buf.String()).To(ContainSubstring("### Appendix"))
		})

		It("renders sanitized html", func() {
			Expect(report.WriteHTML(buf, data)).To(Succeed())
			out := buf.String()
			Expect(out).To(ContainSubstring("<h1"))
			Expect(out).To(ContainSubstring("<table>"))
			Expect(out).NotTo(ContainSubstring("<script"))
		})

		It("strips script tags from document headings", func() {
			data.Sections[0].Heading = "<script>alert(1)</script>"
			Expect(report.WriteHTML(buf, data)).To(Succeed())
			Expect(buf.String()).NotTo(ContainSubstring("<script>"))
		})
	})

	Context("structured formats", func() {
		It("writes json with severity names", func() {
			Expect(report.WriteJSON(buf, data)).To(Succeed())

			var decoded map[string]interface{}
			Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
			Expect(decoded["total_blocks"]).To(BeEquivalentTo(3))
			Expect(buf.String()).To(ContainSubstring(`"severity": "high"`))
		})

		It("writes yaml", func() {
			Expect(report.WriteYAML(buf, data)).To(Succeed())

			var decoded map[string]interface{}
			Expect(yaml.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
			Expect(decoded["blocks_with_issues"]).To(Equal(2))
			Expect(buf.String()).To(ContainSubstring("severity: high"))
		})

		It("writes one csv row per issue", func() {
			Expect(report.WriteCSV(buf, data)).To(Succeed())

			rows, err := csv.NewReader(buf).ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0][0]).To(Equal("section"))
			Expect(rows[1][0]).To(Equal("Appendix"))
			Expect(rows[1][9]).To(Equal("false"))
			Expect(rows[2][5]).To(Equal("undefined_method"))
			Expect(rows[2][9]).To(Equal("true"))
		})
	})

	Context("dispatch", func() {
		It("falls back to text", func() {
			Expect(report.CreateReport(buf, report.Format("other"), data, nil)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("CODE SMELLS SUMMARY"))
		})

		It("selects the requested writer", func() {
			Expect(report.CreateReport(buf, report.FormatJSON, data, nil)).To(Succeed())
			Expect(strings.TrimSpace(buf.String())).To(HavePrefix("{"))
		})
	})
})
