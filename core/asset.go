package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AssetKind is the closed variant tag of a bibliographic asset.
type AssetKind string

const (
	AssetKindBook   AssetKind = "BOOK"
	AssetKindThesis AssetKind = "THESIS"
)

// Condition describes the physical state of an asset.
type Condition string

const (
	ConditionGood        Condition = "GOOD"
	ConditionFair        Condition = "FAIR"
	ConditionPoor        Condition = "POOR"
	ConditionUnderRepair Condition = "UNDER_REPAIR"
)

// ShelfLocation points to the physical place of an asset in the library.
type ShelfLocation struct {
	Section string `json:"section"`
	Shelf   string `json:"shelf"`
}

// BookDetails holds the attributes specific to the Book variant.
type BookDetails struct {
	Publisher string `json:"publisher"`
	Edition   string `json:"edition"`
	Subject   string `json:"subject"`
}

// ThesisDetails holds the attributes specific to the Thesis variant.
type ThesisDetails struct {
	Advisor    string `json:"advisor"`
	Program    string `json:"program"`
	DegreeType string `json:"degreeType"`
}

// Asset is a catalogued Book or Thesis. Exactly one of Book/Thesis is set and
// it must match Kind - BuildBook/BuildThesis are the only intended
// constructors. A nil Code means the asset has no human code yet; a non-nil
// code is globally unique across both variants.
//
// Assets are never hard-deleted while loan history references them; DeletedAt
// marks the soft deletion.
type Asset struct {
	ID           uuid.UUID      `json:"id"`
	Kind         AssetKind      `json:"kind"`
	Code         *string        `json:"code,omitempty"`
	Title        string         `json:"title"`
	Author       string         `json:"author,omitempty"`
	Year         *int           `json:"year,omitempty"`
	Condition    Condition      `json:"condition"`
	Location     ShelfLocation  `json:"location"`
	Notes        string         `json:"notes,omitempty"`
	Book         *BookDetails   `json:"book,omitempty"`
	Thesis       *ThesisDetails `json:"thesis,omitempty"`
	RegisteredAt OccurredAtTS   `json:"registeredAt"`
	DeletedAt    *time.Time     `json:"deletedAt,omitempty"`
}

var (
	// ErrEmptyAssetTitle is returned when building an asset without a title.
	ErrEmptyAssetTitle = errors.New("asset title must not be empty")

	// ErrInvalidAssetVariant is returned when the variant details do not match
	// the asset kind.
	ErrInvalidAssetVariant = errors.New("asset variant details do not match the asset kind")
)

// BuildBook creates a Book asset.
func BuildBook(
	id uuid.UUID,
	code *string,
	title string,
	author string,
	year *int,
	condition Condition,
	location ShelfLocation,
	details BookDetails,
	registeredAt time.Time,
) (Asset, error) {

	if title == "" {
		return Asset{}, ErrEmptyAssetTitle
	}

	return Asset{
		ID:           id,
		Kind:         AssetKindBook,
		Code:         code,
		Title:        title,
		Author:       author,
		Year:         year,
		Condition:    conditionOrDefault(condition),
		Location:     location,
		Book:         &details,
		RegisteredAt: ToOccurredAt(registeredAt),
	}, nil
}

// BuildThesis creates a Thesis asset.
func BuildThesis(
	id uuid.UUID,
	code *string,
	title string,
	author string,
	year *int,
	condition Condition,
	location ShelfLocation,
	details ThesisDetails,
	registeredAt time.Time,
) (Asset, error) {

	if title == "" {
		return Asset{}, ErrEmptyAssetTitle
	}

	return Asset{
		ID:           id,
		Kind:         AssetKindThesis,
		Code:         code,
		Title:        title,
		Author:       author,
		Year:         year,
		Condition:    conditionOrDefault(condition),
		Location:     location,
		Thesis:       &details,
		RegisteredAt: ToOccurredAt(registeredAt),
	}, nil
}

// IsDeleted reports whether the asset is soft-deleted.
func (a Asset) IsDeleted() bool {
	return a.DeletedAt != nil
}

// ValidateVariant checks the closed-variant invariant: the details matching
// Kind are set and the other variant's details are absent.
func (a Asset) ValidateVariant() error {
	switch a.Kind {
	case AssetKindBook:
		if a.Book == nil || a.Thesis != nil {
			return ErrInvalidAssetVariant
		}
	case AssetKindThesis:
		if a.Thesis == nil || a.Book != nil {
			return ErrInvalidAssetVariant
		}
	default:
		return ErrInvalidAssetVariant
	}

	return nil
}

func conditionOrDefault(c Condition) Condition {
	if c == "" {
		return ConditionGood
	}

	return c
}
