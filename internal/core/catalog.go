package core

// Listing is a product offer of one store.
type Listing struct {
	ID            int64  `json:"id"`
	StoreID       string `json:"store_id"`
	StoreName     string `json:"store_name"`
	SKURef        string `json:"sku_ref"`
	ListingTitle  string `json:"listing_title"`
	PriceIDR      int64  `json:"price_idr"`
	Stock         int    `json:"stock"`
	ItemCondition string `json:"item_condition"`
}

// ListingUpdate changes only the fields that are set.
type ListingUpdate struct {
	PriceIDR     *int64  `json:"price_idr"`
	Stock        *int    `json:"stock"`
	ListingTitle *string `json:"listing_title"`
}

func (u ListingUpdate) Empty() bool {
	return u.PriceIDR == nil && u.Stock == nil && u.ListingTitle == nil
}

// Spec is the technical sheet of a device model.
type Spec struct {
	SKU         string  `json:"sku"`
	Model       string  `json:"model"`
	Brand       string  `json:"brand"`
	Processor   string  `json:"processor"`
	RAMGB       int     `json:"ram_gb"`
	StorageGB   int     `json:"storage_gb"`
	BatteryMAh  int     `json:"battery_mah"`
	ScreenSize  float64 `json:"screen_size"`
	ScreenType  string  `json:"screen_type"`
	NFCSupport  bool    `json:"nfc_support"`
	NetworkType string  `json:"network_type"`
}
