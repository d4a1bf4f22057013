package transfers

import (
	"context"
	"errors"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/sqlutil"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxRetryInterval = time.Second

// BuyPlayer purchases a pending listing for the caller's team. The whole
// purchase runs in one serializable transaction and is retried from the start
// when the store reports a serialization conflict. Once the attempts run out
// the caller receives ErrConflict.
func (a *App) BuyPlayer(ctx context.Context, req BuyPlayerRequest) (*PurchaseResult, error) {
	if req.UserID == uuid.Nil || req.TeamID == uuid.Nil || req.TransferID == uuid.Nil {
		return nil, invalidRequest("user, team and transfer ids are required")
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = a.rules.RetryBaseDelay
	expo.MaxInterval = maxRetryInterval

	attempt := 0
	result, err := backoff.Retry(ctx, func() (PurchaseResult, error) {
		attempt++
		res, err := a.purchase(ctx, req)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, sqlutil.ErrSerialization) {
			log.Warn().
				Str("transfer_id", req.TransferID.String()).
				Int("attempt", attempt).
				Msg("Purchase hit a serialization conflict")
			return PurchaseResult{}, err
		}
		return PurchaseResult{}, backoff.Permanent(err)
	},
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(a.rules.MaxPurchaseAttempts)),
	)
	if err != nil {
		if errors.Is(err, sqlutil.ErrSerialization) {
			log.Warn().
				Str("transfer_id", req.TransferID.String()).
				Int("attempts", attempt).
				Msg("Purchase retries exhausted")
		}
		return nil, a.fail(err, "buy player")
	}

	log.Info().
		Str("transfer_id", result.TransferID.String()).
		Str("player_id", result.PlayerID.String()).
		Str("buyer_team_id", result.BuyerTeamID.String()).
		Str("seller_team_id", result.SellerTeamID.String()).
		Str("purchase_price", result.PurchasePrice.String()).
		Int("attempts", attempt).
		Msg("Player purchased")
	return &result, nil
}

// purchase is one attempt. Every fact it checks is read inside the
// transaction that performs the writes.
func (a *App) purchase(ctx context.Context, req BuyPlayerRequest) (PurchaseResult, error) {
	var result PurchaseResult
	err := a.store.WithinTx(ctx, sqlutil.Serializable, func(tx TransferTx) error {
		listing, err := tx.GetTransferForPurchase(ctx, req.TransferID)
		if err != nil {
			if errors.Is(err, sqlutil.ErrNotFound) {
				return notFound("transfer %s not found", req.TransferID)
			}
			return err
		}
		if listing.Status != models.TransferStatusPending {
			return rejected(RuleNotAvailable, "transfer is not available")
		}
		if listing.SellerUserID == req.UserID {
			return rejected(RuleSelfPurchase, "cannot buy a player from your own team")
		}

		buyer, err := a.ownedTeam(ctx, tx, req.UserID, req.TeamID)
		if err != nil {
			return err
		}
		if buyer.RosterSize >= a.rules.RosterCeiling {
			return rejected(RuleRosterCeiling, "team already has %d players, the maximum is %d", buyer.RosterSize, a.rules.RosterCeiling)
		}

		price := a.rules.PurchasePrice(listing.Price)
		if buyer.Budget.LessThan(price) {
			return rejected(RuleInsufficientBudget, "budget %s does not cover purchase price %s", buyer.Budget.String(), price.String())
		}

		sellerRoster, err := tx.CountRoster(ctx, listing.SellerTeamID)
		if err != nil {
			return err
		}
		if sellerRoster <= a.rules.RosterFloor {
			return rejected(RuleSellerRosterFloor, "seller has %d players and cannot go below %d", sellerRoster, a.rules.RosterFloor)
		}

		completedAt := a.clock.Now().UTC()
		ok, err := tx.CompleteTransfer(ctx, listing.TransferID, buyer.ID, completedAt)
		if err != nil {
			return err
		}
		if !ok {
			return rejected(RuleNotAvailable, "transfer is not available")
		}
		moved, err := tx.MovePlayer(ctx, listing.PlayerID, listing.SellerTeamID, buyer.ID)
		if err != nil {
			return err
		}
		if !moved {
			return rejected(RuleNotAvailable, "transfer is not available")
		}
		if err := tx.AdjustBudget(ctx, buyer.ID, price.Neg()); err != nil {
			return err
		}
		if err := tx.AdjustBudget(ctx, listing.SellerTeamID, price); err != nil {
			return err
		}

		result = PurchaseResult{
			TransferID:    listing.TransferID,
			PlayerID:      listing.PlayerID,
			PurchasePrice: price,
			BuyerTeamID:   buyer.ID,
			SellerTeamID:  listing.SellerTeamID,
			CompletedAt:   completedAt,
		}
		return tx.InsertOutboxEvent(ctx, listing.TransferID, events.TransferCompleted, events.TransferCompletedPayload{
			TransferID:    result.TransferID.String(),
			PlayerID:      result.PlayerID.String(),
			SellerTeamID:  result.SellerTeamID.String(),
			BuyerTeamID:   result.BuyerTeamID.String(),
			PurchasePrice: price.String(),
			CompletedAt:   completedAt,
		})
	})
	return result, err
}
