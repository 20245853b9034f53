package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"reciboscan/constants"
	"reciboscan/internal/common"
	"reciboscan/internal/pipeline"
	"reciboscan/internal/store"
)

func TestProcessor(t *testing.T) {
	// Disable logging during tests
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	RegisterFailHandler(Fail)
	RunSpecs(t, "Processor Suite")
}

const seniatTicket = `SENIAT
FACTURA: 00012345
01/02/2026 13:12
TOTAL Bs 45.652,00`

var _ = Describe("Processor", func() {
	var (
		ctx context.Context
		dir string
		st  store.TransactionStore
		p   *Processor
	)

	writeDump := func(name, text string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(text), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		var err error
		st, err = store.NewSQLiteStore(ctx, filepath.Join(dir, "recibos.db"), nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(st.Close()).To(Succeed())
		})
		p = NewProcessor(nil, nil, nil, st)
	})

	Describe("ProcessFile", func() {
		When("the dump is a recognizable store ticket", func() {
			var res ProcessResult

			BeforeEach(func() {
				var err error
				res, err = p.ProcessFile(ctx, writeDump("ticket.txt", seniatTicket), "farmacia")
				Expect(err).NotTo(HaveOccurred())
			})

			It("produces a recognized output", func() {
				Expect(res.Output.Recognized()).To(BeTrue())
				Expect(res.Status).To(Equal(constants.ScanStatusRecognized))
				Expect(res.Output.RecipeName).To(Equal(constants.RecipeStoreReceipt))
				Expect(res.Output.Amount.Equal(decimal.RequireFromString("45652.00"))).To(BeTrue())
			})

			It("emits schema-valid JSON", func() {
				Expect(res.JSON).NotTo(BeEmpty())
				Expect(pipeline.ValidateOutputJSON(res.JSON)).To(Succeed())
			})

			It("persists the transaction with the hint", func() {
				Expect(res.StoredID).NotTo(Equal(uuid.Nil))
				Expect(res.Duplicate).To(BeFalse())

				got, err := st.GetByRef(ctx, "00012345")
				Expect(err).NotTo(HaveOccurred())
				Expect(got.Hint).To(Equal("farmacia"))
				Expect(got.Recipe).To(Equal(constants.RecipeStoreReceipt))
			})
		})

		When("the same ticket is processed twice", func() {
			It("reports the second pass as a duplicate", func() {
				path := writeDump("ticket.txt", seniatTicket)
				_, err := p.ProcessFile(ctx, path, "")
				Expect(err).NotTo(HaveOccurred())

				res, err := p.ProcessFile(ctx, path, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Duplicate).To(BeTrue())
				Expect(res.Status).To(Equal(constants.ScanStatusDuplicate))
				Expect(res.StoredID).To(Equal(uuid.Nil))
			})
		})

		When("the dump is empty", func() {
			It("reports an unreadable image", func() {
				_, err := p.ProcessFile(ctx, writeDump("blank.txt", "   \n\n"), "")
				Expect(errors.Is(err, common.ErrUnreadable)).To(BeTrue())
			})
		})

		When("no recipe recognizes the text", func() {
			It("returns the raw text without persisting anything", func() {
				res, err := p.ProcessFile(ctx, writeDump("junk.txt", "hola mundo"), "")
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Output.Recognized()).To(BeFalse())
				Expect(res.Status).To(Equal(constants.ScanStatusUnrecognized))
				Expect(res.Output.RawText).To(Equal("hola mundo"))
				Expect(res.StoredID).To(Equal(uuid.Nil))

				txs, err := st.List(ctx, nil, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(txs).To(BeEmpty())
			})
		})

		When("the file does not exist", func() {
			It("fails with a read error", func() {
				_, err := p.ProcessFile(ctx, filepath.Join(dir, "missing.txt"), "")
				Expect(err).To(HaveOccurred())
			})
		})

		When("no store is configured", func() {
			It("still produces output", func() {
				stateless := NewProcessor(nil, nil, nil, nil)
				res, err := stateless.ProcessFile(ctx, writeDump("ticket.txt", seniatTicket), "")
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Output.Recognized()).To(BeTrue())
				Expect(res.StoredID).To(Equal(uuid.Nil))
			})
		})
	})
})
