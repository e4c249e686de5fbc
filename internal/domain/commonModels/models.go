package commonModels

import "time"

// Document is the text of one uploaded file. It is replaced wholesale on a
// new upload and never edited in place.
type Document struct {
	Name        string    `json:"doc_name"`
	Content     string    `json:"content"`
	Size        int       `json:"size"`
	ContentType DocType   `json:"content_type"`
	LoadedAt    time.Time `json:"loaded_at"`
}

type DocType string

var TXT DocType = "TXT"
var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
