package output

import (
	"bytes"
	"html/template"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

// TableClass is the CSS class of rendered HTML tables.
const TableClass = "table table-bordered table-striped"

var tableTemplate = template.Must(template.New("table").Parse(
	`<table class="{{.Class}}">` +
		`<thead><tr>{{range .View.Columns}}<th>{{.}}</th>{{end}}</tr></thead>` +
		`<tbody>{{range .View.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>` +
		`</table>`))

// HTMLTable renders a view as an HTML table fragment. Cell values are
// escaped.
func HTMLTable(view models.View) (string, error) {
	var buf bytes.Buffer
	err := tableTemplate.Execute(&buf, struct {
		Class string
		View  models.View
	}{TableClass, view})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
