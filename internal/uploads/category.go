package uploads

import "strings"

// Category is one of the two upload kinds, each with its own folder, form
// field, and extension allow-list.
type Category string

const (
	CategoryDocuments Category = "documents"
	CategoryPhotos    Category = "photos"
)

// documentExtensions mirrors the office-format allow-list the mobile client
// offers, plus pdf/txt.
var documentExtensions = []string{
	".doc", ".docx",
	".xls", ".xlsx", ".xlsm",
	".ppt", ".pptx", ".pptm",
	".xltx", ".xltm",
	".dotx", ".dotm",
	".potx", ".potm",
	".pdf", ".txt",
}

var photoExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".heic",
}

// FormField is the multipart field name the client posts the file under.
func (c Category) FormField() string {
	if c == CategoryPhotos {
		return "photo"
	}
	return "document"
}

func (c Category) extensions() []string {
	if c == CategoryPhotos {
		return photoExtensions
	}
	return documentExtensions
}

// Allows reports whether the lowercased extension (including dot) is in the
// category's allow-list.
func (c Category) Allows(ext string) bool {
	for _, allowed := range c.extensions() {
		if ext == allowed {
			return true
		}
	}
	return false
}

// AllowedList renders the allow-list for rejection messages.
func (c Category) AllowedList() string {
	return strings.Join(c.extensions(), ", ")
}
