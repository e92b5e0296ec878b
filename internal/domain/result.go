package domain

// ApplicationResult summarises one simulated path. Counter is the number of
// candidates the resolver substituted.
type ApplicationResult struct {
	Moved    int `json:"moved"`
	Reliable int `json:"reliable"`
	Counter  int `json:"counter"`
}
