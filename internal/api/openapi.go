package api

import (
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/pkg/openapi"
)

// specJSON serializes the API spec once at startup so the openapi.json
// route serves static bytes.
func specJSON(cfg *config.Config) ([]byte, error) {
	return openapi.MarshalJSON(buildSpec(cfg))
}

func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.AddTag("catalog", "Document catalog loaded from the review table")
	spec.AddTag("reviews", "Review sessions, decisions, and audit trails")
	spec.AddTag("viewer", "Document rendering strategies")
	spec.AddTag("storage", "Raw object storage access")

	spec.Components.AddSchemas(domainSchemas())

	registerCatalogPaths(spec)
	registerReviewPaths(spec)
	registerViewerPaths(spec)
	registerStoragePaths(spec)

	return spec
}

func pageOf(item string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        openapi.ArrayOf(item),
			"total":       {Type: "integer", Description: "Total matching items"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}

func pageParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
	}
}

func keyParam() *openapi.Parameter {
	return &openapi.Parameter{
		Name:        "key",
		In:          "path",
		Required:    true,
		Description: "Object key, may contain slashes",
		Schema:      &openapi.Schema{Type: "string"},
	}
}

func domainSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Record": {
			Type:        "object",
			Description: "One document version in the catalog",
			Properties: map[string]*openapi.Schema{
				"batch":         {Type: "string", Example: "B001"},
				"type":          {Type: "string", Enum: []any{"CI", "PL"}},
				"version":       {Type: "integer", Example: 1},
				"storage_key":   {Type: "string", Example: "CI/B001/B001_1.pdf"},
				"filename":      {Type: "string", Example: "B001_1.pdf"},
				"portal_status": {Type: "string", Example: "Pending"},
				"reason":        {Type: "string"},
			},
		},
		"RecordPage": pageOf("Record"),
		"VerifyResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":    {Type: "string"},
				"exists": {Type: "boolean"},
				"error":  {Type: "string", Description: "Probe failure, absent when the check completed"},
			},
		},
		"VerifyReport": {
			Type:        "object",
			Description: "Existence check of every catalog key against the object store",
			Properties: map[string]*openapi.Schema{
				"total":   {Type: "integer"},
				"present": {Type: "integer"},
				"missing": {Type: "integer"},
				"failed":  {Type: "integer"},
				"results": openapi.ArrayOf("VerifyResult"),
			},
		},
		"Pair": {
			Type:        "object",
			Description: "Adjacent version pair eligible for comparison",
			Properties: map[string]*openapi.Schema{
				"version_a": {Type: "integer", Example: 1},
				"version_b": {Type: "integer", Example: 2},
			},
		},
		"VersionInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"version":       {Type: "integer"},
				"storage_key":   {Type: "string"},
				"filename":      {Type: "string"},
				"portal_status": {Type: "string"},
				"reason":        {Type: "string"},
			},
		},
		"StatusEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"batch":    {Type: "string"},
				"doc_type": {Type: "string", Enum: []any{"CI", "PL"}},
				"status":   {Type: "string", Enum: []any{"not-reviewed", "reviewed"}},
			},
		},
		"Snapshot": {
			Type:        "object",
			Description: "Full state of a review session",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"created":     {Type: "string"},
				"batches":     {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"batch":       {Type: "string"},
				"doc_type":    {Type: "string", Enum: []any{"CI", "PL"}},
				"versions":    openapi.ArrayOf("VersionInfo"),
				"pairs":       openapi.ArrayOf("Pair"),
				"comparison":  openapi.SchemaRef("Pair"),
				"comparable":  {Type: "boolean", Description: "False when the selection has fewer than two versions"},
				"statuses":    openapi.ArrayOf("StatusEntry"),
				"audit_count": {Type: "integer"},
			},
		},
		"Summary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"created":     {Type: "string"},
				"batch":       {Type: "string"},
				"doc_type":    {Type: "string"},
				"audit_count": {Type: "integer"},
				"reviewed":    {Type: "integer", Description: "Count of combinations marked reviewed"},
			},
		},
		"SummaryPage": pageOf("Summary"),
		"AuditEntry": {
			Type:        "object",
			Description: "Immutable record of one review decision",
			Properties: map[string]*openapi.Schema{
				"timestamp": {Type: "string"},
				"batch":     {Type: "string"},
				"doc_type":  {Type: "string"},
				"v1_v2":     {Type: "string", Example: "1_2"},
				"status":    {Type: "string"},
				"notes":     {Type: "string"},
				"decision":  {Type: "string", Enum: []any{"Accept", "Reject", "Request More Information"}},
			},
		},
		"ExportResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"csv":       {Type: "string", Description: "Serialized audit trail"},
				"key":       {Type: "string", Description: "Storage key when persisted"},
				"persisted": {Type: "boolean"},
				"warning":   {Type: "string", Description: "Persistence failure detail, CSV text is still returned"},
			},
		},
		"View": {
			Type:        "object",
			Description: "Render outcome for one document",
			Properties: map[string]*openapi.Schema{
				"key":      {Type: "string"},
				"strategy": {Type: "string", Example: "inline"},
				"html":     {Type: "string"},
				"url":      {Type: "string", Description: "Backing URL for strategies that link rather than embed"},
				"error":    {Type: "string"},
			},
		},
		"StrategyStats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":      {Type: "string"},
				"attempts":  {Type: "integer"},
				"successes": {Type: "integer"},
			},
		},
		"SelectBatch": {
			Type:     "object",
			Required: []string{"batch"},
			Properties: map[string]*openapi.Schema{
				"batch": {Type: "string", Example: "B001"},
			},
		},
		"SelectDocType": {
			Type:     "object",
			Required: []string{"doc_type"},
			Properties: map[string]*openapi.Schema{
				"doc_type": {Type: "string", Enum: []any{"CI", "PL"}},
			},
		},
		"SelectComparison": {
			Type:     "object",
			Required: []string{"version_a", "version_b"},
			Properties: map[string]*openapi.Schema{
				"version_a": {Type: "integer"},
				"version_b": {Type: "integer"},
			},
		},
		"Decision": {
			Type:     "object",
			Required: []string{"decision"},
			Properties: map[string]*openapi.Schema{
				"decision": {Type: "string", Enum: []any{"Accept", "Reject", "Request More Information"}},
				"notes":    {Type: "string"},
			},
		},
		"StorageMetadata": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":           {Type: "string"},
				"size":          {Type: "integer"},
				"content_type":  {Type: "string"},
				"last_modified": {Type: "string", Format: "date-time"},
				"etag":          {Type: "string"},
			},
		},
		"StorageList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"objects":     openapi.ArrayOf("StorageMetadata"),
				"next_marker": {Type: "string"},
				"truncated":   {Type: "boolean"},
			},
		},
		"SignedURL": {
			Type:        "object",
			Description: "Pre-authenticated read link with key, url, and expires_at fields",
			Properties: map[string]*openapi.Schema{
				"key":        {Type: "string"},
				"url":        {Type: "string"},
				"expires_at": {Type: "string"},
			},
			AdditionalProperties: &openapi.Schema{Type: "string"},
		},
	}
}

func registerCatalogPaths(spec *openapi.Spec) {
	spec.AddPath("/catalog", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List catalog records",
			Tags:    []string{"catalog"},
			Parameters: append(
				[]*openapi.Parameter{
					openapi.QueryParam("batch", "string", "Filter by batch identifier", false),
					openapi.QueryParam("type", "string", "Filter by document type (CI or PL)", false),
					openapi.QueryParam("status", "string", "Filter by portal status", false),
				},
				pageParams()...,
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated catalog records", "RecordPage"),
				400: openapi.ResponseRef("BadRequest"),
				502: openapi.ResponseRef("BadGateway"),
			},
		},
	})

	spec.AddPath("/catalog/batches", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List distinct batches",
			Tags:    []string{"catalog"},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Sorted batch identifiers",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type:  "array",
								Items: &openapi.Schema{Type: "string"},
							},
						},
					},
				},
				502: openapi.ResponseRef("BadGateway"),
			},
		},
	})

	spec.AddPath("/catalog/versions", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List versions for a batch and type",
			Tags:    []string{"catalog"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("batch", "string", "Batch identifier", true),
				openapi.QueryParam("type", "string", "Document type (CI or PL)", true),
			},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Ascending version numbers",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type:  "array",
								Items: &openapi.Schema{Type: "integer"},
							},
						},
					},
				},
				400: openapi.ResponseRef("BadRequest"),
				502: openapi.ResponseRef("BadGateway"),
			},
		},
	})

	spec.AddPath("/catalog/verify", &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Verify catalog keys against storage",
			Description: "Probes every catalog storage key concurrently and reports presence.",
			Tags:        []string{"catalog"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Verification report", "VerifyReport"),
				403: openapi.ResponseRef("Forbidden"),
				502: openapi.ResponseRef("BadGateway"),
			},
		},
	})
}

func registerReviewPaths(spec *openapi.Spec) {
	id := openapi.PathParam("id", "Review session identifier")

	spec.AddPath("/reviews/pairs", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List comparison pairs for a batch and type",
			Tags:    []string{"reviews"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("batch", "string", "Batch identifier", true),
				openapi.QueryParam("type", "string", "Document type (CI or PL)", true),
			},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Adjacent version pairs, empty when fewer than two versions exist",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: openapi.ArrayOf("Pair")},
					},
				},
				400: openapi.ResponseRef("BadRequest"),
				502: openapi.ResponseRef("BadGateway"),
			},
		},
	})

	spec.AddPath("/reviews", &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Create a review session",
			Description: "Initializes a session on the first batch and CI documents.",
			Tags:        []string{"reviews"},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created session snapshot", "Snapshot"),
				502: openapi.ResponseRef("BadGateway"),
			},
		},
		Get: &openapi.Operation{
			Summary:    "List review sessions",
			Tags:       []string{"reviews"},
			Parameters: pageParams(),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated session summaries", "SummaryPage"),
			},
		},
	})

	spec.AddPath("/reviews/{id}", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a session snapshot",
			Tags:       []string{"reviews"},
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session snapshot", "Snapshot"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a session",
			Tags:       []string{"reviews"},
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				204: {Description: "Session deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/batch", &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Select the session batch",
			Tags:        []string{"reviews"},
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("SelectBatch", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated snapshot", "Snapshot"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/doctype", &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Select the session document type",
			Tags:        []string{"reviews"},
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("SelectDocType", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated snapshot", "Snapshot"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/comparison", &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Select the comparison pair",
			Tags:        []string{"reviews"},
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("SelectComparison", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated snapshot", "Snapshot"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/decision", &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Record a review decision",
			Description: "Appends an audit entry and marks the current combination reviewed.",
			Tags:        []string{"reviews"},
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("Decision", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Appended audit entry", "AuditEntry"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/status", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get review status for a combination",
			Tags:    []string{"reviews"},
			Parameters: []*openapi.Parameter{
				id,
				openapi.QueryParam("batch", "string", "Batch identifier", true),
				openapi.QueryParam("type", "string", "Document type (CI or PL)", true),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Review status", "StatusEntry"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/audit", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List audit entries",
			Tags:       []string{"reviews"},
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Audit entries in append order",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: openapi.ArrayOf("AuditEntry")},
					},
				},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/audit/export.csv", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download the audit trail as CSV",
			Tags:       []string{"reviews"},
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "CSV attachment",
					Content: map[string]*openapi.MediaType{
						"text/csv": {Schema: &openapi.Schema{Type: "string"}},
					},
				},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/reviews/{id}/audit/export", &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Export the audit trail to storage",
			Description: "Serializes the trail and uploads it. CSV text returns even when persistence fails.",
			Tags:        []string{"reviews"},
			Parameters:  []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Export outcome", "ExportResult"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})
}

func registerViewerPaths(spec *openapi.Spec) {
	spec.AddPath("/viewer/render", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Render a stored document",
			Description: "Tries each configured strategy in order and returns the first usable view.",
			Tags:        []string{"viewer"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("key", "string", "Object storage key", true),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Render outcome", "View"),
				400: openapi.ResponseRef("BadRequest"),
				403: openapi.ResponseRef("Forbidden"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/viewer/strategies", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List strategy statistics",
			Tags:    []string{"viewer"},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Attempt and success counts per strategy in configured order",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: openapi.ArrayOf("StrategyStats")},
					},
				},
			},
		},
	})
}

func registerStoragePaths(spec *openapi.Spec) {
	spec.AddPath("/storage", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List stored objects",
			Tags:    []string{"storage"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("prefix", "string", "Key prefix filter", false),
				openapi.QueryParam("marker", "string", "Continuation marker from a previous page", false),
				openapi.QueryParam("max_results", "integer", "Page size cap", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("One page of object metadata", "StorageList"),
				400: openapi.ResponseRef("BadRequest"),
				403: openapi.ResponseRef("Forbidden"),
			},
		},
	})

	spec.AddPath("/storage/download/{key}", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download an object",
			Tags:       []string{"storage"},
			Parameters: []*openapi.Parameter{keyParam()},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Object content as an attachment",
					Content: map[string]*openapi.MediaType{
						"application/octet-stream": {
							Schema: &openapi.Schema{Type: "string", Format: "binary"},
						},
					},
				},
				403: openapi.ResponseRef("Forbidden"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/storage/signed/{key}", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Issue a signed read URL",
			Description: "Returns a pre-authenticated URL valid for the configured TTL unless overridden.",
			Tags:        []string{"storage"},
			Parameters: []*openapi.Parameter{
				keyParam(),
				openapi.QueryParam("ttl", "string", "Validity window as a Go duration, for example 15m", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Signed URL descriptor", "SignedURL"),
				400: openapi.ResponseRef("BadRequest"),
				403: openapi.ResponseRef("Forbidden"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})

	spec.AddPath("/storage/{key}", &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get object metadata",
			Tags:       []string{"storage"},
			Parameters: []*openapi.Parameter{keyParam()},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Object metadata", "StorageMetadata"),
				403: openapi.ResponseRef("Forbidden"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	})
}
