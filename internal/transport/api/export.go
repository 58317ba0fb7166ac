package api

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/internal/core"
)

type marketItem struct {
	ListingID int64         `json:"listing_id"`
	StoreInfo marketStore   `json:"store_info"`
	Product   marketProduct `json:"product"`
	Pricing   marketPricing `json:"pricing"`
}

type marketStore struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type marketProduct struct {
	SKURef    string `json:"sku_ref"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
}

type marketPricing struct {
	Currency       string `json:"currency"`
	Amount         int64  `json:"amount"`
	StockAvailable int    `json:"stock_available"`
}

type xmlCatalog struct {
	XMLName xml.Name    `xml:"katalog_gadget"`
	Gadgets []xmlGadget `xml:"gadget"`
}

type xmlGadget struct {
	ID     string    `xml:"id,attr"`
	Model  string    `xml:"model"`
	Brand  string    `xml:"brand"`
	Teknis xmlTeknis `xml:"teknis"`
	Fitur  xmlFitur  `xml:"fitur"`
}

type xmlTeknis struct {
	Processor string   `xml:"processor"`
	RAM       xmlUnit  `xml:"ram"`
	Storage   xmlUnit  `xml:"storage"`
	Baterai   xmlUnit  `xml:"baterai"`
	Layar     xmlLayar `xml:"layar"`
}

type xmlUnit struct {
	Satuan string `xml:"satuan,attr"`
	Value  int    `xml:",chardata"`
}

type xmlLayar struct {
	Tipe string  `xml:"tipe,attr"`
	Size float64 `xml:",chardata"`
}

type xmlFitur struct {
	NFC      int    `xml:"nfc"`
	Jaringan string `xml:"jaringan"`
}

func ExportListingsHandler(repo core.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		listings, err := repo.All(c.Request.Context())
		if err != nil {
			internalError(c, err, "Gagal mengekspor data.")
			return
		}
		c.IndentedJSON(http.StatusOK, listings)
	}
}

// ExportMarketHandler reshapes listings into the nested market feed.
func ExportMarketHandler(repo core.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		listings, err := repo.All(c.Request.Context())
		if err != nil {
			internalError(c, err, "Gagal mengekspor data.")
			return
		}

		items := make([]marketItem, 0, len(listings))
		for _, l := range listings {
			items = append(items, marketItem{
				ListingID: l.ID,
				StoreInfo: marketStore{ID: l.StoreID, Name: l.StoreName},
				Product:   marketProduct{SKURef: l.SKURef, Title: l.ListingTitle, Condition: l.ItemCondition},
				Pricing:   marketPricing{Currency: "IDR", Amount: l.PriceIDR, StockAvailable: l.Stock},
			})
		}
		c.IndentedJSON(http.StatusOK, items)
	}
}

func ExportSpecsHandler(repo core.SpecRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		specs, err := repo.List(c.Request.Context())
		if err != nil {
			internalError(c, err, "Gagal mengekspor data.")
			return
		}

		data, err := xml.MarshalIndent(specsToXML(specs), "", "  ")
		if err != nil {
			internalError(c, err, "Gagal mengekspor data.")
			return
		}
		c.Data(http.StatusOK, "text/xml; charset=UTF-8", append([]byte(xml.Header), data...))
	}
}

func specsToXML(specs []core.Spec) xmlCatalog {
	out := xmlCatalog{Gadgets: make([]xmlGadget, 0, len(specs))}
	for _, s := range specs {
		nfc := 0
		if s.NFCSupport {
			nfc = 1
		}
		out.Gadgets = append(out.Gadgets, xmlGadget{
			ID:    "sku_" + s.SKU,
			Model: s.Model,
			Brand: s.Brand,
			Teknis: xmlTeknis{
				Processor: s.Processor,
				RAM:       xmlUnit{Satuan: "GB", Value: s.RAMGB},
				Storage:   xmlUnit{Satuan: "GB", Value: s.StorageGB},
				Baterai:   xmlUnit{Satuan: "mAh", Value: s.BatteryMAh},
				Layar:     xmlLayar{Tipe: s.ScreenType, Size: s.ScreenSize},
			},
			Fitur: xmlFitur{NFC: nfc, Jaringan: s.NetworkType},
		})
	}
	return out
}
