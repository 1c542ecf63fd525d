package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/opendatapdx/api-cataloger/internal/pkg/domain"
	"github.com/opendatapdx/api-cataloger/internal/pkg/infrastructure/repositories/persistence"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned both when a record does not exist and when it
// exists but is outside the requester's visible set. Callers must not be
// able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrSchemaShape is returned when a schema update tries to add, remove or
// rename properties. The property names were derived from the actual file
// and are fixed for the lifetime of the schema.
var ErrSchemaShape = errors.New("schema property set may not be changed")

// ErrPublisherHasDatasets is returned when deleting a publisher that still
// owns datasets.
var ErrPublisherHasDatasets = errors.New("publisher still owns datasets")

// Datastore is an interface that is used to inject the database into
// services and handlers to improve testability
type Datastore interface {
	CreateDataset(dataset *persistence.Dataset) (*persistence.Dataset, error)
	GetDatasets(r domain.Requester, limit, offset int) ([]persistence.Dataset, error)
	GetDatasetByIdentifier(r domain.Requester, identifier string) (*persistence.Dataset, error)
	GetSchemaByID(r domain.Requester, id uint) (*persistence.Schema, bool, error)
	UpdateSchema(r domain.Requester, id uint, doc domain.SchemaDocument) error
	SetDatasetPublished(r domain.Requester, identifier string, published bool) error
	GetOrCreateCatalog(defaults persistence.Catalog) (*persistence.Catalog, error)
	GetPublisherByID(id uint) (*persistence.Publisher, error)
	CreatePublisher(p *persistence.Publisher) (*persistence.Publisher, error)
	DeletePublisher(id uint) error
}

type catalogDB struct {
	impl *gorm.DB
}

// ConnectorFunc is used to inject a database connection method into NewDatabaseConnection
type ConnectorFunc func() (*gorm.DB, error)

// NewSQLiteConnector opens a connection to a local sqlite database, or to
// an in-memory instance if the file path is empty.
func NewSQLiteConnector(filePath string) ConnectorFunc {
	return func() (*gorm.DB, error) {
		if filePath == "" {
			filePath = "file::memory:?cache=shared"
		}

		db, err := gorm.Open(sqlite.Open(filePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}

		return db, err
	}
}

// NewDatabaseConnection initializes a new connection to the database and wraps it in a Datastore
func NewDatabaseConnection(ctx context.Context, connect ConnectorFunc) (Datastore, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(
		&persistence.Catalog{},
		&persistence.Publisher{},
		&persistence.Dataset{},
		&persistence.Schema{},
		&persistence.Distribution{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Msg("connected to database")

	return &catalogDB{impl: impl}, nil
}

// visibleTo pushes the requester's visibility predicate into the query so
// that it is applied before any lookup, list or detail alike.
func visibleTo(r domain.Requester) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if r.Admin {
			return db.Where("complete = ?", true)
		}

		if !r.IsAnonymous() {
			return db.Where("complete = ? AND (publisher_id = ? OR published = ?)", true, r.ID, true)
		}

		return db.Where("published = ?", true)
	}
}

func (db *catalogDB) CreateDataset(dataset *persistence.Dataset) (*persistence.Dataset, error) {
	// Dataset, schema and distributions are persisted in one transaction
	// so that a failure leaves nothing behind.
	err := db.impl.Transaction(func(tx *gorm.DB) error {
		result := tx.Create(dataset)
		return result.Error
	})

	if err != nil {
		return nil, err
	}

	return dataset, nil
}

func (db *catalogDB) GetDatasets(r domain.Requester, limit, offset int) ([]persistence.Dataset, error) {
	datasets := []persistence.Dataset{}

	query := db.impl.Scopes(visibleTo(r)).
		Preload("Publisher").Preload("Schema").Preload("Distributions").
		Order("datasets.id").Offset(offset)

	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&datasets)
	if result.Error != nil {
		return nil, result.Error
	}

	return datasets, nil
}

func (db *catalogDB) GetDatasetByIdentifier(r domain.Requester, identifier string) (*persistence.Dataset, error) {
	dataset := &persistence.Dataset{}

	result := db.impl.Scopes(visibleTo(r)).
		Preload("Publisher").Preload("Schema").Preload("Distributions").
		Where("identifier = ?", identifier).
		First(dataset)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	return dataset, nil
}

// GetSchemaByID returns the schema row and whether its dataset has been
// published, applying the requester's visibility predicate first.
func (db *catalogDB) GetSchemaByID(r domain.Requester, id uint) (*persistence.Schema, bool, error) {
	schema := &persistence.Schema{}

	result := db.impl.Select("schemas.*").
		Joins("JOIN datasets ON datasets.id = schemas.dataset_id").
		Scopes(visibleTo(r)).
		Where("schemas.id = ?", id).
		First(schema)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, result.Error
	}

	var published bool
	err := db.impl.Model(&persistence.Dataset{}).
		Select("published").
		Where("id = ?", schema.DatasetID).
		Scan(&published).Error
	if err != nil {
		return nil, false, err
	}

	return schema, published, nil
}

func (db *catalogDB) UpdateSchema(r domain.Requester, id uint, doc domain.SchemaDocument) error {
	if r.IsAnonymous() {
		return ErrNotFound
	}

	// Concurrent edits are last write wins, but the fixed property set is
	// validated against the stored document inside the transaction so a
	// racing edit can never grow or shrink the property list.
	return db.impl.Transaction(func(tx *gorm.DB) error {
		schema := &persistence.Schema{}

		query := tx.Select("schemas.*").
			Joins("JOIN datasets ON datasets.id = schemas.dataset_id").
			Where("schemas.id = ?", id)
		if !r.Admin {
			query = query.Where("datasets.publisher_id = ?", r.ID)
		}

		if err := query.First(schema).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		stored := domain.SchemaDocument{}
		if err := json.Unmarshal([]byte(schema.Data), &stored); err != nil {
			return fmt.Errorf("stored schema document is not valid json: %w", err)
		}

		if !sameProperties(stored.PropertyNames(), doc.PropertyNames()) {
			return ErrSchemaShape
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		return tx.Model(schema).Update("data", string(data)).Error
	})
}

func sameProperties(stored, updated []string) bool {
	if len(stored) != len(updated) {
		return false
	}

	for i := range stored {
		if stored[i] != updated[i] {
			return false
		}
	}

	return true
}

// SetDatasetPublished flips the published flag. Only the owner or an
// administrator may do so, anyone else gets a not found.
func (db *catalogDB) SetDatasetPublished(r domain.Requester, identifier string, published bool) error {
	if r.IsAnonymous() {
		return ErrNotFound
	}

	query := db.impl.Model(&persistence.Dataset{}).Where("identifier = ?", identifier)
	if !r.Admin {
		query = query.Where("publisher_id = ?", r.ID)
	}

	result := query.Update("published", published)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (db *catalogDB) GetOrCreateCatalog(defaults persistence.Catalog) (*persistence.Catalog, error) {
	catalog := &persistence.Catalog{}

	result := db.impl.Where(persistence.Catalog{ConformsTo: defaults.ConformsTo}).
		Attrs(defaults).
		FirstOrCreate(catalog)

	if result.Error != nil {
		return nil, result.Error
	}

	return catalog, nil
}

func (db *catalogDB) GetPublisherByID(id uint) (*persistence.Publisher, error) {
	publisher := &persistence.Publisher{}

	result := db.impl.First(publisher, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	return publisher, nil
}

func (db *catalogDB) CreatePublisher(p *persistence.Publisher) (*persistence.Publisher, error) {
	result := db.impl.Create(p)
	if result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

func (db *catalogDB) DeletePublisher(id uint) error {
	return db.impl.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&persistence.Dataset{}).Where("publisher_id = ?", id).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return ErrPublisherHasDatasets
		}

		return tx.Delete(&persistence.Publisher{}, id).Error
	})
}
