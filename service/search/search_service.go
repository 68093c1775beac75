package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	"inventory.GO/core/cache"
	entity "inventory.GO/model/entity"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService wraps the Elasticsearch client. A nil client means search is
// not configured; callers get an explicit error, never a panic.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		host = "http://localhost:9200"
	}
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "inventory_products"
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}

	return &SearchService{
		client: client,
		index:  index,
	}
}

// IndexProduct writes the product document. Best effort: callers ignore the
// error on the write path so a down ES never blocks CRUD.
func (s *SearchService) IndexProduct(ctx context.Context, p *entity.Product) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	doc, err := json.Marshal(map[string]interface{}{
		"product_id":  p.ProductID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"supplier_id": p.SupplierID,
	})
	if err != nil {
		return err
	}
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(doc),
		s.client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ProductID), 10)),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// Search queries name and description and returns matching product ids.
// Results are memoized for 60s.
func (s *SearchService) Search(ctx context.Context, query string, size int) ([]uint, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	if size <= 0 {
		size = 20
	}

	if v, ok := cache.GetInstance().GetN("search", s.index, query, size); ok {
		return v.([]uint), nil
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "description"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if id, err := strconv.ParseUint(h.ID, 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	cache.GetInstance().SetN([]interface{}{"search", s.index, query, size}, ids, 60)
	return ids, nil
}
