package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/gadgetbot/internal/core"
)

type createListingRequest struct {
	StoreID       string `json:"store_id"`
	StoreName     string `json:"store_name"`
	SKURef        string `json:"sku_ref"`
	ListingTitle  string `json:"listing_title"`
	PriceIDR      int64  `json:"price_idr"`
	Stock         int    `json:"stock"`
	ItemCondition string `json:"item_condition"`
}

// ListListingsHandler answers ?id= with a one-element array (empty when
// unknown), ?search= cheapest first, and otherwise the newest listings.
func ListListingsHandler(repo core.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if raw, ok := c.GetQuery("id"); ok {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, messageResponse{Message: "Parameter ID tidak valid."})
				return
			}

			listing, err := repo.Get(ctx, id)
			switch {
			case isNotFound(err):
				c.IndentedJSON(http.StatusOK, []core.Listing{})
			case err != nil:
				internalError(c, err, "Gagal mengambil data.")
			default:
				c.IndentedJSON(http.StatusOK, []core.Listing{listing})
			}
			return
		}

		listings, err := repo.Search(ctx, c.Query("search"))
		if err != nil {
			internalError(c, err, "Gagal mengambil data.")
			return
		}
		c.IndentedJSON(http.StatusOK, listings)
	}
}

func CreateListingHandler(repo core.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createListingRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.StoreID == "" || req.SKURef == "" {
			c.JSON(http.StatusBadRequest, messageResponse{Message: "Data tidak lengkap. store_id dan sku_ref wajib ada."})
			return
		}

		id, err := repo.Create(c.Request.Context(), core.Listing{
			StoreID:       req.StoreID,
			StoreName:     req.StoreName,
			SKURef:        req.SKURef,
			ListingTitle:  req.ListingTitle,
			PriceIDR:      req.PriceIDR,
			Stock:         req.Stock,
			ItemCondition: req.ItemCondition,
		})
		if err != nil {
			internalError(c, err, "Gagal menambah data.")
			return
		}
		c.JSON(http.StatusCreated, messageResponse{Message: "Data berhasil ditambahkan", ID: id})
	}
}

func UpdateListingHandler(repo core.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := listingID(c, "Parameter ID wajib ada di URL untuk edit data.")
		if !ok {
			return
		}

		var req core.ListingUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, messageResponse{Message: "Body JSON tidak valid."})
			return
		}

		err := repo.Update(c.Request.Context(), id, req)
		switch {
		case isNotFound(err):
			c.JSON(http.StatusNotFound, messageResponse{Message: fmt.Sprintf("Data ID %d tidak ditemukan", id)})
		case err != nil:
			internalError(c, err, "Gagal update data.")
		default:
			c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Data ID %d berhasil diupdate", id)})
		}
	}
}

func DeleteListingHandler(repo core.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := listingID(c, "Parameter ID wajib ada di URL untuk hapus data.")
		if !ok {
			return
		}

		err := repo.Delete(c.Request.Context(), id)
		switch {
		case isNotFound(err):
			c.JSON(http.StatusNotFound, messageResponse{Message: fmt.Sprintf("Data ID %d tidak ditemukan", id)})
		case err != nil:
			internalError(c, err, "Gagal hapus data.")
		default:
			c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Data ID %d berhasil dihapus", id)})
		}
	}
}

// listingID reads ?id= and answers 400 with missing when it is absent or
// not a number.
func listingID(c *gin.Context, missing string) (int64, bool) {
	raw := c.Query("id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, messageResponse{Message: missing})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Parameter ID tidak valid."})
		return 0, false
	}
	return id, true
}
