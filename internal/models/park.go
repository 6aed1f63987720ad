package models

// Park is a row of the parks registry, owned by the parks module.
type Park struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
