package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>作业批改报告</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; color: #222; }
.score { font-size: 3em; color: #2a7; }
.section { margin-top: 1.5em; }
.section h2 { font-size: 1.1em; border-bottom: 1px solid #ddd; padding-bottom: 0.3em; }
img { max-width: 100%; }
pre { white-space: pre-wrap; background: #f7f7f7; padding: 1em; }
</style>
</head>
<body>
<h1>作业批改报告</h1>
<p>{{.Username}} · {{.SubjectLabel}} · {{.Date}}</p>
<div class="score">{{.Score}}</div>
<div class="section">
<h2>作业内容</h2>
{{if .IsImage}}<img src="{{.ImageSrc}}" alt="作业图片">{{else}}<pre>{{.Content}}</pre>{{end}}
</div>
<div class="section">
<h2>总体评价</h2>
<p>{{.Comment}}</p>
</div>
<div class="section">
<h2>具体问题</h2>
{{if .Issues}}<ul>{{range .Issues}}<li>{{.}}</li>{{end}}</ul>{{else}}<p>无</p>{{end}}
</div>
<div class="section">
<h2>改进建议</h2>
<p>{{.Suggestions}}</p>
</div>
</body>
</html>
`

var subjectLabels = map[string]string{
	models.SubjectMath:    "数学",
	models.SubjectChinese: "语文",
	models.SubjectEnglish: "英语",
	models.SubjectOther:   "其他",
}

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportData struct {
	Username     string
	SubjectLabel string
	Date         string
	Score        int
	Content      string
	ImageSrc     template.URL
	IsImage      bool
	Comment      string
	Issues       []string
	Suggestions  string
}

// RenderReport writes a self-contained HTML document for one grading record.
func RenderReport(w io.Writer, g *models.Grading) error {
	label, ok := subjectLabels[g.Subject]
	if !ok {
		label = g.Subject
	}

	data := reportData{
		Username:     g.Username,
		SubjectLabel: label,
		Date:         time.Unix(g.Date, 0).UTC().Format("2006-01-02 15:04"),
		Score:        g.Score,
		Content:      g.Content,
		IsImage:      g.DataType == models.DataTypeImage,
		Comment:      g.Comment,
		Issues:       g.Issues,
		Suggestions:  g.Suggestions,
	}

	if data.IsImage {
		// the upload is a data: URL, which the template's URL filter would
		// otherwise reject
		data.ImageSrc = template.URL(g.Content)
	}

	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
