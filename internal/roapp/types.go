package roapp

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"bitzone/internal/models"
)

// The upstream feed is not under our control: numbers arrive as strings,
// single values arrive where arrays are documented, and half the fields have
// two historical names. The raw types below accept every shape we have seen;
// Normalize then fails closed on anything still missing a required field so
// one broken record never aborts a sync.

// FlexInt decodes a JSON number or a numeric string.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*f = FlexInt(v)
		return nil
	}

	// Some records carry integer ids as floats.
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(int64(v))
	return nil
}

// FlexFloat decodes a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexStrings decodes a string, an array of strings, or null.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}

	if data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*f = values
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		*f = nil
		return nil
	}
	*f = []string{value}
	return nil
}

// RawProduct mirrors a goods record as delivered, aliases included.
type RawProduct struct {
	ID          FlexInt     `json:"id"`
	GoodID      FlexInt     `json:"good_id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Price       FlexFloat   `json:"price"`
	RetailPrice FlexFloat   `json:"retail_price"`
	Category    string      `json:"category"`
	CategoryObj *struct {
		Title string `json:"title"`
	} `json:"category_data"`
	Stock       FlexInt     `json:"residue"`
	StockAlias  FlexInt     `json:"stock"`
	Images      FlexStrings `json:"images"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	Specs       FlexStrings `json:"specs"`
	CreatedAt   string      `json:"created_at"`
}

var errMissingRequired = errors.New("roapp: record missing required fields")

// Normalize converts a raw record into the stored product shape. Records
// missing an id or a name are rejected; everything optional defaults.
func (r RawProduct) Normalize() (models.Product, error) {
	id := int64(r.ID)
	if id == 0 {
		id = int64(r.GoodID)
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = strings.TrimSpace(r.Title)
	}

	if id <= 0 || name == "" {
		return models.Product{}, errMissingRequired
	}

	price := float64(r.Price)
	if price == 0 {
		price = float64(r.RetailPrice)
	}
	if price < 0 {
		price = 0
	}

	category := strings.TrimSpace(r.Category)
	if category == "" && r.CategoryObj != nil {
		category = strings.TrimSpace(r.CategoryObj.Title)
	}

	stock := int(r.Stock)
	if stock == 0 {
		stock = int(r.StockAlias)
	}
	if stock < 0 {
		stock = 0
	}

	images := []string(r.Images)
	if len(images) == 0 && strings.TrimSpace(r.Image) != "" {
		images = []string{strings.TrimSpace(r.Image)}
	}

	createdAt := time.Now()
	if raw := strings.TrimSpace(r.CreatedAt); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			createdAt = parsed
		}
	}

	return models.Product{
		RoappID:     id,
		Name:        name,
		Price:       price,
		Category:    category,
		Stock:       stock,
		Images:      models.StringList(images),
		Description: strings.TrimSpace(r.Description),
		Specs:       models.StringList(r.Specs),
		CreatedAt:   createdAt,
	}, nil
}

// RawCategory mirrors a category record as delivered.
type RawCategory struct {
	ID       FlexInt  `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	ParentID *FlexInt `json:"parent_id"`
}

// Normalize rejects categories without an id or a name.
func (r RawCategory) Normalize() (models.Category, error) {
	id := int64(r.ID)
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = strings.TrimSpace(r.Title)
	}

	if id <= 0 || name == "" {
		return models.Category{}, errMissingRequired
	}

	var parentID *int64
	if r.ParentID != nil && int64(*r.ParentID) > 0 {
		v := int64(*r.ParentID)
		parentID = &v
	}

	return models.Category{
		RoappID:   id,
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	}, nil
}
