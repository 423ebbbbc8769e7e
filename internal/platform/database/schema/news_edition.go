package schema

// NewsEditionTable represents the 'news.edition' table
type NewsEditionTable struct {
	Table           string
	ID              string
	Title           string
	Slug            string
	PublicationDate string
	PDFPath         string
	OGImagePath     string
	Status          string
	CreatedAt       string
	UpdatedAt       string
	DeletedAt       string
}

// NewsEdition is the schema definition for news.edition
var NewsEdition = NewsEditionTable{
	Table:           "news.edition",
	ID:              "id",
	Title:           "title",
	Slug:            "slug",
	PublicationDate: "publicationdate",
	PDFPath:         "pdfpath",
	OGImagePath:     "ogimagepath",
	Status:          "status",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
	DeletedAt:       "deletedat",
}

func (t NewsEditionTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.PublicationDate, t.PDFPath, t.OGImagePath,
		t.Status, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
