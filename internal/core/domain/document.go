package domain

import "iter"

// PlainSectionTitle is the banner of the plain record group.
const PlainSectionTitle = "Package installs"

// BuildSectionTitle returns the banner of a build variant sub-group.
func BuildSectionTitle(v BuildVariant) string {
	return "Build " + string(v)
}

// Section is a banner followed by its records.
type Section struct {
	Title   string
	Records []LabRecord
}

// Document is the result of one generation pass.
type Document struct {
	Header   []string
	Sections []Section
}

// Records yields every record in document order.
func (d *Document) Records() iter.Seq[*LabRecord] {
	return func(yield func(*LabRecord) bool) {
		for i := range d.Sections {
			for j := range d.Sections[i].Records {
				if !yield(&d.Sections[i].Records[j]) {
					return
				}
			}
		}
	}
}

// Len returns the number of records in the document.
func (d *Document) Len() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Records)
	}
	return n
}

// Labels returns the labels of every record in document order.
func (d *Document) Labels() []string {
	labels := make([]string, 0, d.Len())
	for r := range d.Records() {
		labels = append(labels, r.Label)
	}
	return labels
}
