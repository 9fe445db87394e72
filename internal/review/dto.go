package review

type CreateReviewDTO struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}
