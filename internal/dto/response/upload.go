package response

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
