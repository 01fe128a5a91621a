package dropbox

import (
	"context"
	"log/slog"
)

// CurrentAccount returns the account the access token belongs to.
// A successful call also proves the token is valid.
func (c *Client) CurrentAccount(ctx context.Context) (*Account, error) {
	var ar accountResponse
	if err := c.rpc(ctx, "/2/users/get_current_account", nil, &ar); err != nil {
		return nil, err
	}

	acct := ar.toAccount()

	c.logger.Debug("fetched current account",
		slog.String("account_id", acct.AccountID),
	)

	return &acct, nil
}

// SpaceUsage returns the space usage of the current account.
func (c *Client) SpaceUsage(ctx context.Context) (*SpaceUsage, error) {
	var sr spaceUsageResponse
	if err := c.rpc(ctx, "/2/users/get_space_usage", nil, &sr); err != nil {
		return nil, err
	}

	return &SpaceUsage{
		Used:      sr.Used,
		Allocated: sr.Allocation.Allocated,
	}, nil
}
