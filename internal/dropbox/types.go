package dropbox

import "time"

// WriteMode selects what happens when a file already exists at the target path.
type WriteMode string

// Write modes accepted by files/upload.
const (
	WriteModeAdd       WriteMode = "add"
	WriteModeOverwrite WriteMode = "overwrite"
)

// FileMetadata is the subset of Dropbox file metadata this client reports.
type FileMetadata struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PathLower      string    `json:"path_lower"`
	PathDisplay    string    `json:"path_display"`
	Rev            string    `json:"rev"`
	Size           int64     `json:"size"`
	ContentHash    string    `json:"content_hash"`
	ClientModified time.Time `json:"client_modified"`
	ServerModified time.Time `json:"server_modified"`
}

// Account describes the user the access token belongs to.
type Account struct {
	AccountID   string
	DisplayName string
	Email       string
	Country     string
}

// accountResponse is the JSON shape of users/get_current_account.
type accountResponse struct {
	AccountID string `json:"account_id"`
	Name      struct {
		DisplayName string `json:"display_name"`
	} `json:"name"`
	Email   string `json:"email"`
	Country string `json:"country"`
}

func (r *accountResponse) toAccount() Account {
	return Account{
		AccountID:   r.AccountID,
		DisplayName: r.Name.DisplayName,
		Email:       r.Email,
		Country:     r.Country,
	}
}

// SpaceUsage reports used and allocated bytes for the account.
// Allocated is zero when the allocation type is not reported.
type SpaceUsage struct {
	Used      int64
	Allocated int64
}

type spaceUsageResponse struct {
	Used       int64 `json:"used"`
	Allocation struct {
		Tag       string `json:".tag"`
		Allocated int64  `json:"allocated"`
	} `json:"allocation"`
}
