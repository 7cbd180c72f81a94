package course

// Course is the only resource served by the API. IDs are assigned by the
// store and never change after creation.
type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Input is the validated payload accepted by create and update.
type Input struct {
	Name string `json:"name"`
}
