package pipeline

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"reciboscan/constants"
)

var _ = Describe("Output JSON", func() {
	Describe("MarshalOutput", func() {
		It("encodes a recognized scan with all fields", func() {
			dt := time.Date(2026, 2, 1, 13, 12, 0, 0, time.Local)
			amount := decimal.RequireFromString("45652.00")
			b, err := MarshalOutput(Output{
				Datetime:      &dt,
				Amount:        &amount,
				TransactionID: "00012345",
				Currency:      constants.DefaultCurrency,
				RecipeName:    constants.RecipeStoreReceipt,
				RawText:       "TOTAL Bs 45.652,00",
			})
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]any
			Expect(json.Unmarshal(b, &doc)).To(Succeed())
			Expect(doc["datetime"]).To(Equal("2026-02-01T13:12:00"))
			Expect(doc["amount"]).To(Equal("45652"))
			Expect(doc["transaction_id"]).To(Equal("00012345"))
			Expect(doc["currency"]).To(Equal("VES"))
			Expect(doc["recipe_name"]).To(Equal("store-receipt"))
		})

		It("omits absent fields but always carries raw_text", func() {
			b, err := MarshalOutput(Output{RawText: "hola mundo"})
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]any
			Expect(json.Unmarshal(b, &doc)).To(Succeed())
			Expect(doc).To(HaveKey("raw_text"))
			Expect(doc).NotTo(HaveKey("datetime"))
			Expect(doc).NotTo(HaveKey("amount"))
			Expect(doc).NotTo(HaveKey("transaction_id"))
			Expect(doc).NotTo(HaveKey("recipe_name"))
		})
	})

	Describe("ValidateOutputJSON", func() {
		It("accepts a marshalled recognized output", func() {
			dt := time.Date(2026, 2, 1, 13, 12, 0, 0, time.Local)
			amount := decimal.RequireFromString("101.50")
			b, err := MarshalOutput(Output{
				Datetime:      &dt,
				Amount:        &amount,
				TransactionID: "1234567",
				Currency:      "VES",
				RecipeName:    constants.RecipeMobilePayment,
				RawText:       "raw",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ValidateOutputJSON(b)).To(Succeed())
		})

		It("accepts an unrecognized output", func() {
			b, err := MarshalOutput(Output{RawText: "hola"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ValidateOutputJSON(b)).To(Succeed())
		})

		It("rejects a missing raw_text", func() {
			Expect(ValidateOutputJSON([]byte(`{"currency":"VES"}`))).NotTo(Succeed())
		})

		It("rejects an unknown recipe name", func() {
			Expect(ValidateOutputJSON([]byte(`{"raw_text":"x","recipe_name":"mystery"}`))).NotTo(Succeed())
		})

		It("rejects a non-numeric transaction id", func() {
			Expect(ValidateOutputJSON([]byte(`{"raw_text":"x","transaction_id":"ABC-123"}`))).NotTo(Succeed())
		})

		It("rejects a malformed datetime", func() {
			Expect(ValidateOutputJSON([]byte(`{"raw_text":"x","datetime":"01/02/2026"}`))).NotTo(Succeed())
		})

		It("rejects unknown fields", func() {
			Expect(ValidateOutputJSON([]byte(`{"raw_text":"x","extra":true}`))).NotTo(Succeed())
		})
	})
})
