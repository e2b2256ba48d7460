package models

// Unit is a named chapter: a contiguous inclusive page range within one document.
type Unit struct {
	UnitID     int    `json:"unit_id"`
	DocumentID int    `json:"document_id"`
	Title      string `json:"title"`
	StartPage  int    `json:"start_page"`
	EndPage    int    `json:"end_page"`
}

// Page is one page of a document's text. Page numbers are unique per document.
type Page struct {
	ID         int    `json:"id"`
	DocumentID int    `json:"document_id"`
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
}
