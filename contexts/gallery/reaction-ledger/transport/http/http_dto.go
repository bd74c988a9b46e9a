package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RecordItemRequest struct {
	ItemID        string `json:"item_id"`
	ExternalRef   string `json:"external_ref"`
	OwnerID       string `json:"owner_id"`
	Prompt        string `json:"prompt"`
	MediaLocation string `json:"media_location"`
}

type PublishItemRequest struct {
	OwnerID string `json:"owner_id"`
	Prompt  string `json:"prompt"`
}

type ItemResponse struct {
	ItemID        string `json:"item_id"`
	ExternalRef   string `json:"external_ref"`
	OwnerID       string `json:"owner_id"`
	Prompt        string `json:"prompt"`
	MediaLocation string `json:"media_location"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ItemTallyResponse struct {
	ItemID        string `json:"item_id"`
	ExternalRef   string `json:"external_ref"`
	OwnerID       string `json:"owner_id"`
	MediaLocation string `json:"media_location"`
	Votes         int    `json:"votes"`
}
