package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"exportdocs/internal"
)

type Config struct {
	DBPath     string
	FilesDir   string
	RawMailDir string

	ExchangeRate float64
	FreightInr   float64
	InsuranceInr float64

	ExporterName      string
	ExporterAddr      string
	ExporterCity      string
	ExporterZip       string
	ExporterGSTIN     string
	ExporterIEC       string
	ExporterState     string
	ExporterStateCode string
	InvoiceCurrency   string
	OriginCountry     string
	ShippingPortCode  string
	PostOfficeCode    string
	LUTReference      string

	Columns map[internal.FieldKey]string

	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	GmailRefreshToken string

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	MailListenerProvider    string
	MailListenerLabel       string
	MailListenerIntervalSec int
	MailListenerFetchMax    int
	MailListenerStageBatch  int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		FilesDir:   getEnv("FILES_DIR", filepath.Join(cwd, "files")),
		RawMailDir: getEnv("MAIL_RAW_DIR", filepath.Join(cwd, "data", "raw")),

		ExchangeRate: getEnvFloat("EXCHANGE_RATE", 82.20),
		FreightInr:   getEnvFloat("FREIGHT_INR", 0),
		InsuranceInr: getEnvFloat("INSURANCE_INR", 0),

		ExporterName:      getEnv("EXPORTER_NAME", "Arts & Crafts"),
		ExporterAddr:      getEnv("EXPORTER_ADDR", "Gr Floor Shop No 12, KH No. 226, Gauransh Homes Sector 16B, Noida, UTTAR PRADESH, 201301"),
		ExporterCity:      getEnv("EXPORTER_CITY", "Noida"),
		ExporterZip:       getEnv("EXPORTER_ZIP", "201301"),
		ExporterGSTIN:     getEnv("EXPORTER_GSTIN", "90ACCPCO8945Q1ZM"),
		ExporterIEC:       getEnv("EXPORTER_IEC", "0517517370"),
		ExporterState:     getEnv("EXPORTER_STATE", "Uttar Pradesh"),
		ExporterStateCode: getEnv("EXPORTER_STATE_CODE", "9"),
		InvoiceCurrency:   getEnv("INVOICE_CURRENCY", "USD"),
		OriginCountry:     getEnv("ORIGIN_COUNTRY", "India"),
		ShippingPortCode:  getEnv("SHIPPING_PORT_CODE", "INDELS"),
		PostOfficeCode:    getEnv("POST_OFFICE_CODE", "INDEL5"),
		LUTReference:      getEnv("LUT_REFERENCE", "AD090423002505G"),

		Columns: loadColumns(),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		MailListenerProvider:    getEnv("MAIL_LISTENER_PROVIDER", "imap"),
		MailListenerLabel:       getEnv("MAIL_LISTENER_LABEL", "INBOX"),
		MailListenerIntervalSec: getEnvInt("MAIL_LISTENER_INTERVAL_SEC", 30),
		MailListenerFetchMax:    getEnvInt("MAIL_LISTENER_FETCH_MAX", 20),
		MailListenerStageBatch:  getEnvInt("MAIL_LISTENER_STAGE_BATCH", 20),
	}

	return cfg, nil
}

// loadColumns maps logical field names to the exact header text expected in
// the workbook. Headers are configuration, never discovered.
func loadColumns() map[internal.FieldKey]string {
	return map[internal.FieldKey]string{
		internal.FieldInvoice:  getEnv("COL_INVOICE", "Invoice"),
		internal.FieldDate:     getEnv("COL_DATE", "Date"),
		internal.FieldCustName: getEnv("COL_CUSTOMER_NAME", "Customer name"),
		internal.FieldAddr1:    getEnv("COL_ADDRESS_1", "Address 01"),
		internal.FieldAddr2:    getEnv("COL_ADDRESS_2", "Address 02"),
		internal.FieldCity:     getEnv("COL_CITY", "City"),
		internal.FieldState:    getEnv("COL_STATE", "State"),
		internal.FieldZip:      getEnv("COL_ZIP", "Zip Code"),
		internal.FieldCountry:  getEnv("COL_COUNTRY", "Country"),
		internal.FieldPhone:    getEnv("COL_PHONE", "Phone"),

		internal.FieldPaymentTransaction: getEnv("COL_PAYMENT_TRANSACTION", "payment Transaction"),
		internal.FieldReference:          getEnv("COL_REFERENCE", "Reference"),
		internal.FieldInvoiceTerms:       getEnv("COL_INVOICE_TERMS", "Invoice Terms"),
		internal.FieldLUTNumber:          getEnv("COL_LUT_NUMBER", "Lut Number"),
		internal.FieldCurrency:           getEnv("COL_CURRENCY", "Currency"),
		internal.FieldURL:                getEnv("COL_URL", "URL"),
		internal.FieldSKU:                getEnv("COL_SKU", "SKU"),

		internal.FieldDesc:     getEnv("COL_DESCRIPTION", "Description"),
		internal.FieldHSN:      getEnv("COL_HSN", "HSN"),
		internal.FieldQty:      getEnv("COL_QTY", "Qty"),
		internal.FieldUnit:     getEnv("COL_UNIT", "Unit"),
		internal.FieldRate:     getEnv("COL_RATE", "FOB"),
		internal.FieldNet:      getEnv("COL_NET_WEIGHT", "Weight Nt"),
		internal.FieldGross:    getEnv("COL_GROSS_WEIGHT", "Weight Gr"),
		internal.FieldTracking: getEnv("COL_TRACKING", "Tracking"),
	}
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
