package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/JaimeStill/collate/pkg/pagination"
)

func testConfig(t *testing.T) pagination.Config {
	t.Helper()
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	return cfg
}

func TestNormalize(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "zero values take defaults",
			req:          pagination.PageRequest{},
			wantPage:     1,
			wantPageSize: cfg.DefaultPageSize,
		},
		{
			name:         "negative page clamped",
			req:          pagination.PageRequest{Page: -5, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
		},
		{
			name:         "oversized page size clamped to max",
			req:          pagination.PageRequest{Page: 2, PageSize: 5000},
			wantPage:     2,
			wantPageSize: cfg.MaxPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("page size: got %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	fields := pagination.ParseSortFields("batch,-timestamp")

	if len(fields) != 2 {
		t.Fatalf("fields: got %d, want 2", len(fields))
	}
	if fields[0].Field != "batch" || fields[0].Descending {
		t.Errorf("fields[0]: got %+v, want ascending batch", fields[0])
	}
	if fields[1].Field != "timestamp" || !fields[1].Descending {
		t.Errorf("fields[1]: got %+v, want descending timestamp", fields[1])
	}
}

func TestSortFieldsUnmarshalString(t *testing.T) {
	var req pagination.PageRequest
	payload := `{"page": 1, "page_size": 10, "sort": "-timestamp"}`

	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(req.Sort) != 1 || req.Sort[0].Field != "timestamp" || !req.Sort[0].Descending {
		t.Errorf("sort: got %+v", req.Sort)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := testConfig(t)
	values := url.Values{}
	values.Set("page", "3")
	values.Set("page_size", "5")
	values.Set("search", "B001")

	req := pagination.PageRequestFromQuery(values, cfg)

	if req.Page != 3 {
		t.Errorf("page: got %d, want 3", req.Page)
	}
	if req.PageSize != 5 {
		t.Errorf("page size: got %d, want 5", req.PageSize)
	}
	if req.Search == nil || *req.Search != "B001" {
		t.Errorf("search: got %v, want B001", req.Search)
	}
	if req.Offset() != 10 {
		t.Errorf("offset: got %d, want 10", req.Offset())
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantData  []int
		wantPages int
	}{
		{name: "first page", page: 1, pageSize: 3, wantData: []int{1, 2, 3}, wantPages: 3},
		{name: "partial last page", page: 3, pageSize: 3, wantData: []int{7}, wantPages: 3},
		{name: "page beyond range", page: 10, pageSize: 3, wantData: []int{}, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.Paginate(items, pagination.PageRequest{
				Page:     tt.page,
				PageSize: tt.pageSize,
			})

			if result.Total != len(items) {
				t.Errorf("total: got %d, want %d", result.Total, len(items))
			}
			if result.TotalPages != tt.wantPages {
				t.Errorf("total pages: got %d, want %d", result.TotalPages, tt.wantPages)
			}
			if len(result.Data) != len(tt.wantData) {
				t.Fatalf("data: got %v, want %v", result.Data, tt.wantData)
			}
			for i := range tt.wantData {
				if result.Data[i] != tt.wantData[i] {
					t.Errorf("data[%d]: got %d, want %d", i, result.Data[i], tt.wantData[i])
				}
			}
		})
	}
}
