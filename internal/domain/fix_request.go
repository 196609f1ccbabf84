package domain

// FixRequest describes one code-fix task handed to the remote agent.
type FixRequest struct {
	ContractID     string `json:"contract_id"`
	RepoURL        string `json:"repo_url"`
	FailureDetails string `json:"failure_details"`
	AKHash         string `json:"ak_hash"`
	AKURL          string `json:"ak_url"`
}
