package models

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrUnknownSection    = errors.New("unknown section")
	ErrUnknownItem       = errors.New("unknown item")
	ErrStructureMismatch = errors.New("checklist structure does not match catalog")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Notes  string `json:"notes"`
}

type Section struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Emoji        string `json:"emoji"`
	Items        []Item `json:"items"`
	SectionNotes string `json:"sectionNotes"`
}

// Checklist is one vehicle inspection record.
//
// ID never changes once assigned. UserID is the author and is set on the
// first save. Sections always hold the catalog structure; only item status,
// item notes and section notes change.
type Checklist struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Plate              string    `json:"plate"`
	Km                 string    `json:"km"`
	Driver             string    `json:"driver"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	Sections           []Section `json:"sections"`
	GeneralNotes       string    `json:"generalNotes"`
	DriverSignature    string    `json:"driverSignature"`
	InspectorSignature string    `json:"inspectorSignature"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewChecklist returns a record seeded from the catalog, dated now.
func NewChecklist(id, userID string, now time.Time) Checklist {
	now = now.UTC()
	return Checklist{
		ID:        id,
		UserID:    userID,
		Date:      now.Format(dateLayout),
		Time:      now.Format(timeLayout),
		Sections:  CatalogSections(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of c.
func (c Checklist) Clone() Checklist {
	out := c
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s
			if s.Items != nil {
				out.Sections[i].Items = append([]Item(nil), s.Items...)
			}
		}
	}
	return out
}

// Section returns a pointer into c for in-place edits.
func (c *Checklist) Section(sectionID string) (*Section, error) {
	for i := range c.Sections {
		if c.Sections[i].ID == sectionID {
			return &c.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, sectionID)
}

func (s *Section) Item(itemID string) (*Item, error) {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownItem, s.ID, itemID)
}

func (c *Checklist) item(sectionID, itemID string) (*Item, error) {
	s, err := c.Section(sectionID)
	if err != nil {
		return nil, err
	}
	return s.Item(itemID)
}

func (c *Checklist) SetItemStatus(sectionID, itemID string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	it, err := c.item(sectionID, itemID)
	if err != nil {
		return err
	}
	it.Status = status
	return nil
}

func (c *Checklist) SetItemNotes(sectionID, itemID, notes string) error {
	it, err := c.item(sectionID, itemID)
	if err != nil {
		return err
	}
	it.Notes = notes
	return nil
}

func (c *Checklist) SetSectionNotes(sectionID, notes string) error {
	s, err := c.Section(sectionID)
	if err != nil {
		return err
	}
	s.SectionNotes = notes
	return nil
}

// ValidateStructure checks that c carries exactly the catalog sections, in
// any order, each with exactly its catalog items and no duplicates.
func ValidateStructure(c Checklist) error {
	if len(c.Sections) != len(catalog) {
		return fmt.Errorf("%w: %d sections, want %d", ErrStructureMismatch, len(c.Sections), len(catalog))
	}

	seen := make(map[string]struct{}, len(c.Sections))
	for _, s := range c.Sections {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate section %s", ErrStructureMismatch, s.ID)
		}
		seen[s.ID] = struct{}{}

		cs, ok := catalogSectionByID(s.ID)
		if !ok {
			return fmt.Errorf("%w: unexpected section %s", ErrStructureMismatch, s.ID)
		}
		if err := validateItems(s, cs); err != nil {
			return err
		}
	}
	return nil
}

func validateItems(s Section, cs catalogSection) error {
	if len(s.Items) != len(cs.items) {
		return fmt.Errorf("%w: section %s has %d items, want %d", ErrStructureMismatch, s.ID, len(s.Items), len(cs.items))
	}

	want := make(map[string]struct{}, len(cs.items))
	for _, ci := range cs.items {
		want[ci.id] = struct{}{}
	}
	for _, it := range s.Items {
		if _, ok := want[it.ID]; !ok {
			return fmt.Errorf("%w: section %s has unexpected or duplicate item %s", ErrStructureMismatch, s.ID, it.ID)
		}
		delete(want, it.ID)
	}
	return nil
}

// CatalogLabels returns a copy of c whose section titles, emojis and item
// names are reset to the catalog's. Status, notes and section notes are
// kept, as is the section and item order. c must pass ValidateStructure.
func CatalogLabels(c Checklist) Checklist {
	out := c.Clone()
	for i := range out.Sections {
		sec := &out.Sections[i]
		cs, ok := catalogSectionByID(sec.ID)
		if !ok {
			continue
		}
		sec.Title = cs.title
		sec.Emoji = cs.emoji
		for j := range sec.Items {
			for _, ci := range cs.items {
				if ci.id == sec.Items[j].ID {
					sec.Items[j].Name = ci.name
					break
				}
			}
		}
	}
	return out
}

func catalogSectionByID(id string) (catalogSection, bool) {
	for _, cs := range catalog {
		if cs.id == id {
			return cs, true
		}
	}
	return catalogSection{}, false
}

// SortNewestFirst orders records by CreatedAt descending. Ties keep their
// relative order.
func SortNewestFirst(records []Checklist) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
