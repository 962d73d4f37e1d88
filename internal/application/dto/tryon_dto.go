package dto

// TryOnRequest entrada del probador virtual.
type TryOnRequest struct {
	ProductImgURL string `json:"product_img_url" validate:"required,url"`
	UserImgURL    string `json:"user_img_url" validate:"required,url"`
}

// TryOnResponse URL pública de la imagen compuesta.
type TryOnResponse struct {
	ImgURL   string `json:"img_url"`
	Attempts int    `json:"attempts"`
}
