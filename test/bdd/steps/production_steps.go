package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/queries"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/test/helpers"
)

// Given steps

func (pc *productionContext) aCampaignWithCredits(credits int) error {
	pc.pending = &campaign.Snapshot{ID: campaignID, Name: "BDD", Credits: credits}
	return nil
}

func (pc *productionContext) aStaffedBase(id string) error {
	if pc.pending == nil {
		return fmt.Errorf("no campaign was set up")
	}
	pc.pending.Bases = append(pc.pending.Bases, helpers.StaffedBase(len(pc.pending.Bases), id))
	return nil
}

func (pc *productionContext) baseStores(baseID string, count int, itemID string) error {
	b, err := pc.pendingBase(baseID)
	if err != nil {
		return err
	}
	b.Storage[itemID] += count
	items := b.Capacities[production.CapacityItems]
	items.Current += count
	b.Capacities[production.CapacityItems] = items
	return nil
}

// baseStoresTable takes an | item | count | table
func (pc *productionContext) baseStoresTable(baseID string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("storage table needs a header and at least one row")
	}
	for _, row := range table.Rows[1:] {
		itemID := getCellValue(table, row, "item")
		count, err := strconv.Atoi(getCellValue(table, row, "count"))
		if err != nil {
			return fmt.Errorf("invalid count for %s: %w", itemID, err)
		}
		if err := pc.baseStores(baseID, count, itemID); err != nil {
			return err
		}
	}
	return nil
}

func (pc *productionContext) baseHoldsACapturedUFO(baseID, itemID string) error {
	b, err := pc.pendingBase(baseID)
	if err != nil {
		return err
	}
	b.Storage[itemID]++
	ufo := b.Capacities[production.CapacityUFOSmall]
	ufo.Current++
	b.Capacities[production.CapacityUFOSmall] = ufo
	return nil
}

func (pc *productionContext) baseHasItemStorageFor(baseID string, units int) error {
	b, err := pc.pendingBase(baseID)
	if err != nil {
		return err
	}
	items := b.Capacities[production.CapacityItems]
	items.Max = units
	b.Capacities[production.CapacityItems] = items
	return nil
}

// When steps

func (pc *productionContext) iQueueItems(amount int, itemID, baseID string) error {
	return pc.send(&commands.EnqueueOrderCommand{
		CampaignID: campaignID,
		BaseID:     baseID,
		Kind:       production.OrderKindManufacture,
		ItemID:     itemID,
		Amount:     amount,
	})
}

func (pc *productionContext) iQueueAircraft(amount int, aircraftID, baseID string) error {
	return pc.send(&commands.EnqueueOrderCommand{
		CampaignID: campaignID,
		BaseID:     baseID,
		Kind:       production.OrderKindManufacture,
		AircraftID: aircraftID,
		Amount:     amount,
	})
}

func (pc *productionContext) iQueueDisassembly(itemID, baseID string) error {
	return pc.send(&commands.EnqueueOrderCommand{
		CampaignID: campaignID,
		BaseID:     baseID,
		Kind:       production.OrderKindDisassembly,
		ItemID:     itemID,
		Amount:     1,
	})
}

func (pc *productionContext) hoursPass(hours int) error {
	if err := pc.send(&commands.RunHoursCommand{CampaignID: campaignID, Hours: hours}); err != nil {
		return err
	}
	return pc.lastErr
}

func (pc *productionContext) iCancelOrder(position int, baseID string) error {
	return pc.send(&commands.CancelOrderCommand{CampaignID: campaignID, BaseID: baseID, Index: position - 1})
}

func (pc *productionContext) iMoveOrderUp(position int, baseID string) error {
	return pc.send(&commands.MoveOrderCommand{CampaignID: campaignID, BaseID: baseID, Index: position - 1, Delta: -1})
}

func (pc *productionContext) iChangeTheAmountOfOrder(position int, baseID string, delta int) error {
	return pc.send(&commands.ChangeAmountCommand{CampaignID: campaignID, BaseID: baseID, Index: position - 1, Delta: delta})
}

func (pc *productionContext) iEmptyTheQueueOf(baseID string) error {
	return pc.send(&commands.EmptyQueueCommand{CampaignID: campaignID, BaseID: baseID})
}

func (pc *productionContext) iSaveTheCampaign() error {
	if err := pc.send(&commands.ExportSavegameCommand{CampaignID: campaignID}); err != nil {
		return err
	}
	if pc.lastErr != nil {
		return pc.lastErr
	}
	pc.savegame = pc.lastResponse.(*commands.ExportSavegameResponse).Data
	return nil
}

func (pc *productionContext) iLoadTheSavedCampaign() error {
	if pc.savegame == nil {
		return fmt.Errorf("nothing was saved")
	}
	if err := pc.send(&commands.ImportSavegameCommand{Data: pc.savegame}); err != nil {
		return err
	}
	return pc.lastErr
}

// Then steps

func (pc *productionContext) theRequestShouldBeGrantedUnits(units int) error {
	if pc.lastErr != nil {
		return fmt.Errorf("expected success but got: %w", pc.lastErr)
	}
	resp, ok := pc.lastResponse.(*commands.EnqueueOrderResponse)
	if !ok {
		return fmt.Errorf("last action was not an enqueue (%T)", pc.lastResponse)
	}
	if resp.Granted != units {
		return fmt.Errorf("expected %d granted units but got %d", units, resp.Granted)
	}
	return nil
}

func (pc *productionContext) theRequestShouldBeRejectedWith(reason string) error {
	if pc.lastErr == nil {
		return fmt.Errorf("expected rejection %s but the request succeeded", reason)
	}
	var verr *production.ValidationError
	if !errors.As(pc.lastErr, &verr) {
		return fmt.Errorf("expected a validation error but got: %v", pc.lastErr)
	}
	if string(verr.Reason) != reason {
		return fmt.Errorf("expected rejection %s but got %s", reason, verr.Reason)
	}
	return nil
}

func (pc *productionContext) theCreditBalanceShouldBe(expected int) error {
	resp, err := pc.query(&queries.ListCampaignsQuery{})
	if err != nil {
		return err
	}
	for _, c := range resp.(*queries.ListCampaignsResponse).Campaigns {
		if c.ID == campaignID {
			if c.Credits != expected {
				return fmt.Errorf("expected %d credits but the pool holds %d", expected, c.Credits)
			}
			return nil
		}
	}
	return fmt.Errorf("campaign %s not found", campaignID)
}

func (pc *productionContext) baseShouldStore(baseID string, expected int, itemID string) error {
	b, err := pc.getBase(baseID)
	if err != nil {
		return err
	}
	actual := 0
	for _, s := range b.Stock {
		if s.ItemID == itemID {
			actual = s.Count
		}
	}
	if actual != expected {
		return fmt.Errorf("expected base %s to store %d %s but it stores %d", baseID, expected, itemID, actual)
	}
	return nil
}

func (pc *productionContext) baseShouldHaveAircraft(baseID string, expected int) error {
	b, err := pc.getBase(baseID)
	if err != nil {
		return err
	}
	if len(b.Aircraft) != expected {
		return fmt.Errorf("expected %d aircraft in base %s but found %d", expected, baseID, len(b.Aircraft))
	}
	return nil
}

func (pc *productionContext) theQueueOfBaseShouldBe(baseID, expected string) error {
	resp, err := pc.listQueue(baseID)
	if err != nil {
		return err
	}
	actual := make([]string, len(resp.Orders))
	for i, o := range resp.Orders {
		actual[i] = fmt.Sprintf("%d %s", o.Amount, o.TargetID)
	}
	if got := strings.Join(actual, ", "); got != expected {
		return fmt.Errorf("expected queue [%s] but got [%s]", expected, got)
	}
	return nil
}

func (pc *productionContext) theQueueOfBaseShouldBeEmpty(baseID string) error {
	resp, err := pc.listQueue(baseID)
	if err != nil {
		return err
	}
	if len(resp.Orders) != 0 {
		return fmt.Errorf("expected an empty queue but found %d orders", len(resp.Orders))
	}
	return nil
}

func (pc *productionContext) orderShouldBePercentDone(position int, baseID string, percent int) error {
	resp, err := pc.listQueue(baseID)
	if err != nil {
		return err
	}
	if position < 1 || position > len(resp.Orders) {
		return fmt.Errorf("base %s has no order at position %d", baseID, position)
	}
	actual := resp.Orders[position-1].PercentDone * 100
	if math.Abs(actual-float64(percent)) > 1e-6 {
		return fmt.Errorf("expected order %d to be %d%% done but it is %.4f%%", position, percent, actual)
	}
	return nil
}

func (pc *productionContext) orderShouldBeCreditBlocked(position int, baseID string) error {
	resp, err := pc.listQueue(baseID)
	if err != nil {
		return err
	}
	if position < 1 || position > len(resp.Orders) {
		return fmt.Errorf("base %s has no order at position %d", baseID, position)
	}
	if !resp.Orders[position-1].CreditBlocked {
		return fmt.Errorf("expected order %d to be waiting for credits", position)
	}
	return nil
}

func (pc *productionContext) noticesShouldHaveBeenRaised(expected int, eventType string) error {
	actual := 0
	for _, e := range pc.recorder.Events() {
		if string(e.Type) == eventType {
			actual++
		}
	}
	if actual != expected {
		return fmt.Errorf("expected %d %s notices but %d were raised", expected, eventType, actual)
	}
	return nil
}

func (pc *productionContext) aNoticeShouldHaveBeenRaisedForBase(eventType, baseID string) error {
	for _, e := range pc.recorder.Events() {
		if string(e.Type) == eventType && e.BaseID == baseID {
			return nil
		}
	}
	return fmt.Errorf("no %s notice was raised for base %s", eventType, baseID)
}

func (pc *productionContext) getBase(baseID string) (*queries.GetBaseResponse, error) {
	resp, err := pc.query(&queries.GetBaseQuery{CampaignID: campaignID, BaseID: baseID})
	if err != nil {
		return nil, err
	}
	return resp.(*queries.GetBaseResponse), nil
}

func (pc *productionContext) listQueue(baseID string) (*queries.ListQueueResponse, error) {
	resp, err := pc.query(&queries.ListQueueQuery{CampaignID: campaignID, BaseID: baseID})
	if err != nil {
		return nil, err
	}
	return resp.(*queries.ListQueueResponse), nil
}

func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	for i, cell := range table.Rows[0].Cells {
		if cell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

// InitializeProductionScenario registers the production queue steps
func InitializeProductionScenario(ctx *godog.ScenarioContext) {
	pc := &productionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, pc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		pc.close()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a campaign with (\d+) credits$`, pc.aCampaignWithCredits)
	ctx.Step(`^a staffed base "([^"]*)"$`, pc.aStaffedBase)
	ctx.Step(`^base "([^"]*)" stores (\d+) "([^"]*)"$`, pc.baseStores)
	ctx.Step(`^base "([^"]*)" stores:$`, pc.baseStoresTable)
	ctx.Step(`^base "([^"]*)" holds a captured "([^"]*)"$`, pc.baseHoldsACapturedUFO)
	ctx.Step(`^base "([^"]*)" has item storage for (\d+) units$`, pc.baseHasItemStorageFor)

	// When steps
	ctx.Step(`^I queue (\d+) "([^"]*)" in base "([^"]*)"$`, pc.iQueueItems)
	ctx.Step(`^I queue (\d+) "([^"]*)" aircraft in base "([^"]*)"$`, pc.iQueueAircraft)
	ctx.Step(`^I queue disassembly of "([^"]*)" in base "([^"]*)"$`, pc.iQueueDisassembly)
	ctx.Step(`^(\d+) hours? pass(?:es)?$`, pc.hoursPass)
	ctx.Step(`^I cancel order (\d+) in base "([^"]*)"$`, pc.iCancelOrder)
	ctx.Step(`^I move order (\d+) up in base "([^"]*)"$`, pc.iMoveOrderUp)
	ctx.Step(`^I change the amount of order (\d+) in base "([^"]*)" by (-?\d+)$`, pc.iChangeTheAmountOfOrder)
	ctx.Step(`^I empty the queue of base "([^"]*)"$`, pc.iEmptyTheQueueOf)
	ctx.Step(`^I save the campaign$`, pc.iSaveTheCampaign)
	ctx.Step(`^I load the saved campaign$`, pc.iLoadTheSavedCampaign)

	// Then steps
	ctx.Step(`^the request should be granted (\d+) units?$`, pc.theRequestShouldBeGrantedUnits)
	ctx.Step(`^the request should be rejected with "([^"]*)"$`, pc.theRequestShouldBeRejectedWith)
	ctx.Step(`^the credit balance should be (\d+)$`, pc.theCreditBalanceShouldBe)
	ctx.Step(`^base "([^"]*)" should store (\d+) "([^"]*)"$`, pc.baseShouldStore)
	ctx.Step(`^base "([^"]*)" should have (\d+) aircraft$`, pc.baseShouldHaveAircraft)
	ctx.Step(`^the queue of base "([^"]*)" should be "([^"]*)"$`, pc.theQueueOfBaseShouldBe)
	ctx.Step(`^the queue of base "([^"]*)" should be empty$`, pc.theQueueOfBaseShouldBeEmpty)
	ctx.Step(`^order (\d+) in base "([^"]*)" should be (\d+)% done$`, pc.orderShouldBePercentDone)
	ctx.Step(`^order (\d+) in base "([^"]*)" should be waiting for credits$`, pc.orderShouldBeCreditBlocked)
	ctx.Step(`^(\d+) "([^"]*)" notices? should have been raised$`, pc.noticesShouldHaveBeenRaised)
	ctx.Step(`^an? "([^"]*)" notice should have been raised for base "([^"]*)"$`, pc.aNoticeShouldHaveBeenRaisedForBase)
}
