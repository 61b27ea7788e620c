package model

// Account is the persisted ledger record for one identity: the currency
// balance plus the set of owned unlock ids. It is keyed by account name and
// outlives any room the account plays in.
type Account struct {
	Name      string   `json:"name" bson:"_id"`
	Taggerz   int      `json:"taggerz" bson:"taggerz"`
	Purchased []string `json:"purchased" bson:"purchased"`
}
