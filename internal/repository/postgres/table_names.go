package postgres

import "fmt"

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Documents        string
	DocumentVersions string
	Folders          string
	Formats          string
	PostingRules     string
	DocumentFormats  string
	FormatFeedback   string
	ContextDocuments string
	Ikigai           string
	CalendarPosts    string
	Topics           string
	Playbooks        string
	PlaybookSlides   string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents:        fmt.Sprintf("%sdocuments", prefix),
		DocumentVersions: fmt.Sprintf("%sdocument_versions", prefix),
		Folders:          fmt.Sprintf("%sfolders", prefix),
		Formats:          fmt.Sprintf("%sformats", prefix),
		PostingRules:     fmt.Sprintf("%sposting_rules", prefix),
		DocumentFormats:  fmt.Sprintf("%sdocument_formats", prefix),
		FormatFeedback:   fmt.Sprintf("%sformat_feedback", prefix),
		ContextDocuments: fmt.Sprintf("%scontext_documents", prefix),
		Ikigai:           fmt.Sprintf("%sikigai", prefix),
		CalendarPosts:    fmt.Sprintf("%scalendar_posts", prefix),
		Topics:           fmt.Sprintf("%stopics", prefix),
		Playbooks:        fmt.Sprintf("%splaybooks", prefix),
		PlaybookSlides:   fmt.Sprintf("%splaybook_slides", prefix),
	}
}
