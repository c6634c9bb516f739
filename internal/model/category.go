package model

// Category is a user's sticky news-topic preference.
type Category string

// Category values. CategoryNone means no preference is locked.
const (
	CategoryNone Category = ""
	CategoryAI   Category = "AI"
	CategoryTech Category = "TECH"
)

// IsValid returns true if the category is one of the known values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNone, CategoryAI, CategoryTech:
		return true
	default:
		return false
	}
}

// String returns the category label, or "NONE" when unset.
func (c Category) String() string {
	if c == CategoryNone {
		return "NONE"
	}
	return string(c)
}
