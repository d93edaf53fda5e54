package stream

import (
	"strings"
	"unicode"

	"github.com/gnames/tapadyen/pkg/field"
)

// All report columns are optional: Adyen adds and drops report columns
// depending on the account configuration.

var settlementDetailsFields = []field.Spec{
	text("Company Account"),
	text("Merchant Account"),
	text("Psp Reference"),
	text("Merchant Reference"),
	text("Payment Method"),
	datetime("Creation Date"),
	text("TimeZone"),
	text("Type"),
	text("Modification Reference"),
	text("Gross Currency"),
	float("Gross Debit (GC)"),
	float("Gross Credit (GC)"),
	float("Exchange Rate"),
	text("Net Currency"),
	float("Net Debit (NC)"),
	float("Net Credit (NC)"),
	float("Commission (NC)"),
	float("Markup (NC)"),
	float("Scheme Fees (NC)"),
	float("Interchange (NC)"),
	text("Payment Method Variant"),
	text("Modification Merchant Reference"),
	integer("Batch Number"),
	text("Acquirer"),
}

var disputeTransactionDetailsFields = []field.Spec{
	text("Company Account"),
	text("Merchant Account"),
	text("Psp Reference"),
	text("Merchant Reference"),
	text("Payment Method"),
	datetime("Record Date"),
	text("Record Date TimeZone"),
	text("Dispute Currency"),
	float("Dispute Amount"),
	text("Record Type"),
	text("Dispute PSP Reference"),
	text("Dispute Reason"),
	text("RFI Scheme Code"),
	text("RFI Reason Code"),
	text("CB Scheme Code"),
	text("CB Reason Code"),
	text("NoF Scheme Code"),
	text("NoF Reason Code"),
	datetime("Payment Date"),
	text("Payment Date TimeZone"),
	text("Payment Currency"),
	float("Payment Amount"),
	datetime("Dispute Date"),
	text("Dispute Date TimeZone"),
	text("Dispute ARN"),
	text("User Name"),
	integer("Risk Scoring"),
	text("Shopper Interaction"),
	text("Shopper Country"),
	text("Issuer Country"),
	text("Issuer Id"),
	boolean("Dispute Auto Defended"),
	datetime("Dispute End Date"),
	text("Dispute End Date TimeZone"),
}

var paymentAccountingFields = []field.Spec{
	text("Company Account"),
	text("Merchant Account"),
	text("Psp Reference"),
	text("Merchant Reference"),
	text("Payment Method"),
	datetime("Booking Date"),
	text("TimeZone"),
	text("Main Currency"),
	float("Main Amount"),
	text("Record Type"),
	text("Payment Currency"),
	float("Received (PC)"),
	float("Authorised (PC)"),
	float("Captured (PC)"),
	text("Settlement Currency"),
	float("Payable (SC)"),
	float("Commission (SC)"),
	float("Markup (SC)"),
	float("Scheme Fees (SC)"),
	float("Interchange (SC)"),
	text("Processing Fee Currency"),
	float("Processing Fee (FC)"),
	text("User Name"),
	text("Payment Method Variant"),
	text("Modification Merchant Reference"),
	integer("Batch Number"),
	text("Acquirer"),
}

var receivedPaymentsFields = []field.Spec{
	text("Company Account"),
	text("Merchant Account"),
	text("Psp Reference"),
	text("Merchant Reference"),
	text("Payment Method"),
	datetime("Creation Date"),
	text("TimeZone"),
	text("Currency"),
	float("Amount"),
	text("Type"),
	integer("Risk Scoring"),
	text("Shopper Interaction"),
	text("Shopper Country"),
	text("Issuer Name"),
	text("Issuer Id"),
	text("Issuer Country"),
	text("Acquirer Response"),
	text("Authorisation Code"),
	text("Shopper Reference"),
	text("3D Directory Response"),
	text("3D Authentication Response"),
	text("CVC2 Response"),
	text("AVS Response"),
	text("Payment Method Variant"),
}

func text(col string) field.Spec {
	return spec(col, field.String)
}

func float(col string) field.Spec {
	return spec(col, field.Float)
}

func integer(col string) field.Spec {
	return spec(col, field.Int)
}

func boolean(col string) field.Spec {
	return spec(col, field.Bool)
}

func datetime(col string) field.Spec {
	return spec(col, field.Datetime)
}

func spec(col string, typ field.Type) field.Spec {
	return field.Spec{
		Column: col,
		Name:   FieldName(col),
		Rule:   field.Rule{Type: typ, Nullable: true},
	}
}

// FieldName converts a report column header into a snake_case field
// name: "Gross Debit (GC)" becomes "gross_debit_gc".
func FieldName(col string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.TrimSpace(col) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}
