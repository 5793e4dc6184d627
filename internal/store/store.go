// Package store owns persisted rows for the catalog and intake entities.
// Every operation is parameterized through GORM, maps storage failures to
// the domain error taxonomy, and keeps the raw engine error out of what
// callers surface.
package store

import (
	"context"
	"path"
	"strings"

	"github.com/atelier-mireille/backend/internal/domain"
	"github.com/atelier-mireille/backend/internal/imagecodec"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
	// publicURL, when non-empty, prefixes resolved order image references
	// (one resolution rule per deployment, applied to every row).
	publicURL string
}

func New(db *gorm.DB, publicURL string) *Store {
	return &Store{db: db, publicURL: strings.TrimRight(publicURL, "/")}
}

// ProductInput carries the validated fields of a product write. Images is
// the canonical list; nil means the client did not supply a list at all.
type ProductInput struct {
	Name        string
	Price       string
	Category    string
	Description string
	Stock       *int
	Images      []string
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &domain.ValidationError{Field: "name"}
	}
	if strings.TrimSpace(in.Price) == "" {
		return &domain.ValidationError{Field: "price"}
	}
	if in.Images == nil {
		return &domain.ValidationError{Field: "images"}
	}
	return nil
}

// ListProducts returns all products with images already decoded into the
// canonical list.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows := []domain.Product{}
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, &domain.StorageError{Op: "products.list", Err: err}
	}
	for i := range rows {
		rows[i].ImageList = imagecodec.Decode(rows[i].Images)
	}
	return rows, nil
}

// CreateProduct validates, encodes the image list and persists a new row.
func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       strings.TrimSpace(in.Price),
		Category:    in.Category,
		Description: in.Description,
		Stock:       in.Stock,
		Images:      imagecodec.Encode(imagecodec.Normalize(in.Images)),
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, &domain.StorageError{Op: "products.create", Err: err}
	}
	p.ImageList = imagecodec.Decode(p.Images)
	return &p, nil
}

// UpdateProduct applies the same validation as create and distinguishes a
// missing row by the affected-row count.
func (s *Store) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        strings.TrimSpace(in.Name),
			"price":       strings.TrimSpace(in.Price),
			"category":    in.Category,
			"description": in.Description,
			"stock":       in.Stock,
			"images":      imagecodec.Encode(imagecodec.Normalize(in.Images)),
		})
	if res.Error != nil {
		return nil, &domain.StorageError{Op: "products.update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	var p domain.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, &domain.StorageError{Op: "products.reload", Err: err}
	}
	p.ImageList = imagecodec.Decode(p.Images)
	return &p, nil
}

// DeleteProduct removes a row; deleting an already-gone id reports
// NotFoundError via the affected-row count.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return &domain.StorageError{Op: "products.delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// OrderInput carries the validated fields of a custom order submission.
type OrderInput struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	Budget      string
	Description string
	Inspiration string
	Deadline    string
	Images      []string
}

func (in *OrderInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return &domain.ValidationError{Field: "name"}
	case strings.TrimSpace(in.Email) == "":
		return &domain.ValidationError{Field: "email"}
	case strings.TrimSpace(in.ProjectType) == "":
		return &domain.ValidationError{Field: "projectType"}
	case strings.TrimSpace(in.Description) == "":
		return &domain.ValidationError{Field: "description"}
	}
	return nil
}

// CreateOrder persists a custom order; the images list defaults to empty.
func (s *Store) CreateOrder(ctx context.Context, in OrderInput) (*domain.CustomOrder, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	o := domain.CustomOrder{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		ProjectType: in.ProjectType,
		Budget:      in.Budget,
		Description: in.Description,
		Inspiration: in.Inspiration,
		Deadline:    in.Deadline,
		Images:      imagecodec.Encode(imagecodec.Normalize(in.Images)),
	}
	if err := s.db.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, &domain.StorageError{Op: "orders.create", Err: err}
	}
	o.ImageList = imagecodec.Decode(o.Images)
	return &o, nil
}

// ListOrders returns orders newest first. Stored image references are
// rewritten into externally resolvable form; this is a presentation
// transform, the rows themselves are untouched.
func (s *Store) ListOrders(ctx context.Context) ([]domain.CustomOrder, error) {
	rows := []domain.CustomOrder{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, &domain.StorageError{Op: "orders.list", Err: err}
	}
	for i := range rows {
		refs := imagecodec.Decode(rows[i].Images)
		resolved := make([]string, 0, len(refs))
		for _, ref := range refs {
			resolved = append(resolved, s.resolveRef(ref))
		}
		rows[i].ImageList = resolved
	}
	return rows, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.CustomOrder{}, id)
	if res.Error != nil {
		return &domain.StorageError{Op: "orders.delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

// ContactInput carries the validated fields of a contact form submission.
type ContactInput struct {
	Prenom      string
	Nom         string
	Telephone   string
	Description string
	ImagePath   string
}

func (in *ContactInput) validate() error {
	switch {
	case strings.TrimSpace(in.Prenom) == "":
		return &domain.ValidationError{Field: "prenom"}
	case strings.TrimSpace(in.Nom) == "":
		return &domain.ValidationError{Field: "nom"}
	case strings.TrimSpace(in.Telephone) == "":
		return &domain.ValidationError{Field: "telephone"}
	case strings.TrimSpace(in.Description) == "":
		return &domain.ValidationError{Field: "description"}
	}
	return nil
}

func (s *Store) CreateContact(ctx context.Context, in ContactInput) (*domain.ContactRequest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	cr := domain.ContactRequest{
		Prenom:      strings.TrimSpace(in.Prenom),
		Nom:         strings.TrimSpace(in.Nom),
		Telephone:   strings.TrimSpace(in.Telephone),
		Description: in.Description,
		ImagePath:   in.ImagePath,
	}
	if err := s.db.WithContext(ctx).Create(&cr).Error; err != nil {
		return nil, &domain.StorageError{Op: "contacts.create", Err: err}
	}
	return &cr, nil
}

// ListContacts returns contact requests newest first with the stored image
// path resolved the same way as order references.
func (s *Store) ListContacts(ctx context.Context) ([]domain.ContactRequest, error) {
	rows := []domain.ContactRequest{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, &domain.StorageError{Op: "contacts.list", Err: err}
	}
	for i := range rows {
		if rows[i].ImagePath != "" {
			rows[i].ImagePath = s.resolveRef(rows[i].ImagePath)
		}
	}
	return rows, nil
}

func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.ContactRequest{}, id)
	if res.Error != nil {
		return &domain.StorageError{Op: "contacts.delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: "contact request", ID: id}
	}
	return nil
}

// resolveRef rewrites a stored attachment path into the deployment's
// externally resolvable form: the bare filename, prefixed with
// <public_url>/uploads/ when a public URL is configured. Data-URIs and
// absolute URLs pass through unchanged.
func (s *Store) resolveRef(ref string) string {
	if strings.HasPrefix(ref, "data:") || strings.Contains(ref, "://") {
		return ref
	}
	name := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	if s.publicURL == "" {
		return name
	}
	return s.publicURL + "/uploads/" + name
}
