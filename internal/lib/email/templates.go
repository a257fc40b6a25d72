package email

// Template names an embedded email template.
type Template string

const (
	// TemplateDeveloperAssigned corresponds to templates/developer_assigned.html
	TemplateDeveloperAssigned Template = "developer_assigned"
)

// File is the template's file name inside the embedded set.
func (t Template) File() string {
	return string(t) + ".html"
}
