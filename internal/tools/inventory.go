package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/realganganadul/gingin-backend/internal/sheets"
)

const inventoryReadRange = "Inventory!A:B"

// InventoryTool adjusts stock levels on the inventory sheet. The read-adjust-
// write sequence is not transactional: concurrent adjustments of the same item
// can lose an update. Stock may also go negative; no floor is enforced.
type InventoryTool struct {
	sheets sheets.Client
}

// NewInventoryTool creates the manage_inventory tool. A nil client leaves the
// tool declared but degraded to a configuration-error result at execution time.
func NewInventoryTool(client sheets.Client) *InventoryTool {
	return &InventoryTool{sheets: client}
}

// Declaration implements Tool.
func (t *InventoryTool) Declaration() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: "manage_inventory",
		Desc: "Updates the stock level of an item in the inventory sheet.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"itemName": {
				Type:     schema.String,
				Desc:     "The name of the item to update.",
				Required: true,
			},
			"quantityChange": {
				Type:     schema.Integer,
				Desc:     "The change in quantity (e.g., -1 for a sale, 10 for a restock).",
				Required: true,
			},
		}),
	}
}

// Execute implements Tool.
func (t *InventoryTool) Execute(ctx context.Context, args map[string]any) Result {
	if t.sheets == nil {
		return Result{Success: false, Error: "Server configuration error: spreadsheet access is not set up."}
	}

	itemName, err := stringArg(args, "itemName")
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	quantityChange, err := intArg(args, "quantityChange")
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	rows, err := t.sheets.ReadRange(ctx, inventoryReadRange)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("failed to read inventory data: %v", err)}
	}

	rowIndex := -1
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(row[0], itemName) {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return Result{Success: false, Message: fmt.Sprintf("Item '%s' not found in inventory.", itemName)}
	}

	newQuantity := currentQuantity(rows[rowIndex]) + quantityChange

	writeRange := fmt.Sprintf("Inventory!B%d", rowIndex+1)
	if err := t.sheets.WriteRange(ctx, writeRange, [][]any{{newQuantity}}); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	return Result{
		Success:     true,
		Message:     fmt.Sprintf("Inventory for %s updated to %d.", itemName, newQuantity),
		NewQuantity: &newQuantity,
	}
}

// currentQuantity reads the stock cell, defaulting to 0 for blank or
// unparseable values.
func currentQuantity(row []string) int {
	if len(row) < 2 {
		return 0
	}
	qty, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return 0
	}
	return qty
}
