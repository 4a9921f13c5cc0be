package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/realganganadul/gingin-backend/internal/sheets"
)

const invoiceAppendRange = "Invoices!A1"

// InvoiceTool appends invoice rows to the ledger sheet.
type InvoiceTool struct {
	sheets sheets.Client
	now    func() time.Time
}

// NewInvoiceTool creates the create_invoice tool. A nil client leaves the tool
// declared but degraded to a configuration-error result at execution time.
func NewInvoiceTool(client sheets.Client) *InvoiceTool {
	return &InvoiceTool{sheets: client, now: time.Now}
}

// Declaration implements Tool.
func (t *InvoiceTool) Declaration() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: "create_invoice",
		Desc: "Creates a new invoice in the Google Sheet.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"customerName": {
				Type:     schema.String,
				Desc:     "The name of the customer.",
				Required: true,
			},
			"items": {
				Type:     schema.Array,
				Desc:     "A list of items purchased.",
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Required: true,
			},
			"totalAmount": {
				Type:     schema.Number,
				Desc:     "The total amount of the invoice.",
				Required: true,
			},
		}),
	}
}

// Execute implements Tool.
func (t *InvoiceTool) Execute(ctx context.Context, args map[string]any) Result {
	if t.sheets == nil {
		return Result{Success: false, Error: "Server configuration error: spreadsheet access is not set up."}
	}

	customerName, err := stringArg(args, "customerName")
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	items, err := stringListArg(args, "items")
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	totalAmount, err := numberArg(args, "totalAmount")
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	row := []any{
		t.now().UTC().Format(time.RFC3339),
		customerName,
		strings.Join(items, ", "),
		totalAmount,
	}
	if err := t.sheets.AppendRow(ctx, invoiceAppendRange, row); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	return Result{Success: true, Message: fmt.Sprintf("Invoice for %s created successfully.", customerName)}
}
