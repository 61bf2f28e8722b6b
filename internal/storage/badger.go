package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"toolscout/internal/domain"
)

const productPrefix = "product:"

// Ensure BadgerRepository implements Repository at compile time.
var _ Repository = (*BadgerRepository)(nil)

// BadgerRepository implements the Repository interface using BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.Info("BadgerDB opened successfully at path: ", dbPath)

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the BadgerDB database connection.
func (r *BadgerRepository) Close() error {
	r.log.Info("Closing BadgerDB...")
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	r.log.Info("BadgerDB closed.")
	return nil
}

// productKey format: product:{url}
func productKey(url string) []byte {
	return []byte(productPrefix + url)
}

// SaveProduct stores or replaces the product keyed by its URL.
func (r *BadgerRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	log := r.log.WithFields(logrus.Fields{
		"product_id": product.ID,
		"url":        product.URL,
	})
	log.Info("Attempting to save product")

	if product.URL == "" {
		return errors.New("product url is required")
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	key := productKey(product.URL)

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			var existing domain.Product
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return fmt.Errorf("failed to decode existing product: %w", err)
			}
			if existing.ID != "" {
				product.ID = existing.ID
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		data, err := json.Marshal(product)
		if err != nil {
			return fmt.Errorf("failed to marshal product: %w", err)
		}
		return txn.SetEntry(badger.NewEntry(key, data))
	})
	if err != nil {
		log.WithError(err).Error("Failed to save product to BadgerDB")
		return fmt.Errorf("failed to save product: %w", err)
	}

	log.Info("Product saved successfully")
	return nil
}

// GetProduct retrieves the product stored for url.
func (r *BadgerRepository) GetProduct(ctx context.Context, url string) (domain.Product, error) {
	var product domain.Product
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(productKey(url))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &product)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		r.log.WithError(err).WithField("url", url).Error("Failed to get product from BadgerDB")
		return domain.Product{}, fmt.Errorf("failed to get product %s: %w", url, err)
	}
	return product, nil
}

// ListProducts retrieves every product, newest first.
func (r *BadgerRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(productPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var product domain.Product
				if err := json.Unmarshal(val, &product); err != nil {
					return fmt.Errorf("failed to unmarshal product data for key %s: %w", string(item.Key()), err)
				}
				products = append(products, product)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.WithError(err).Error("Failed to list products from BadgerDB")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	r.log.WithField("product_count", len(products)).Debug("Products listed")
	return products, nil
}

// DeleteProduct removes the product for url.
func (r *BadgerRepository) DeleteProduct(ctx context.Context, url string) error {
	log := r.log.WithField("url", url)
	log.Info("Attempting to delete product")

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(productKey(url))
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete product from BadgerDB")
		return fmt.Errorf("failed to delete product %s: %w", url, err)
	}

	log.Info("Product deleted successfully")
	return nil
}

// RunGC reclaims value log space every interval until ctx is done.
func (r *BadgerRepository) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := r.db.RunValueLogGC(0.7)
			switch {
			case err == nil:
				r.log.Info("BadgerDB GC completed successfully")
			case errors.Is(err, badger.ErrNoRewrite):
				r.log.Debug("BadgerDB GC: No rewrite needed")
			case errors.Is(err, badger.ErrDBClosed):
				return
			default:
				r.log.WithError(err).Error("BadgerDB GC failed")
			}
		case <-ctx.Done():
			r.log.Info("Stopping BadgerDB GC routine")
			return
		}
	}
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
