package request

type UploadImageRequest struct {
	Folder string `validate:"required,max=100,folder"`
}
