package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CreateHostRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

type UpdateHostRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
	Notes   *string `json:"notes"`
}

type CreateContactRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type CreateCollectionRequest struct {
	HostName       string `json:"host_name"`
	CollectionDate string `json:"collection_date"`
	SandwichCount  int    `json:"sandwich_count"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assignee_id"`
}

type CreateSuggestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type CreateSuggestionResponseRequest struct {
	Message string `json:"message"`
}

type CreateMessageRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// DeleteRequest carries the optional free-text reason for a soft delete.
type DeleteRequest struct {
	Reason string `json:"reason"`
}

type RestoreRequest struct {
	TableName string `json:"table_name"`
	RecordID  string `json:"record_id"`
}

type PurgeRequest struct {
	TableName string `json:"table_name"`
	RecordID  string `json:"record_id"`
}

type BulkDeleteRequest struct {
	TableName string   `json:"table_name"`
	RecordIDs []string `json:"record_ids"`
	Reason    string   `json:"reason"`
}
