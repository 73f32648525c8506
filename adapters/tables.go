package adapters

import "regexp"

var (
	amazonHiResRe       = regexp.MustCompile(`"hiRes"\s*:\s*"(https?://[^"]+)"`)
	amazonLargeRe       = regexp.MustCompile(`"large"\s*:\s*"(https?://[^"]+)"`)
	aliImagePathListRe  = regexp.MustCompile(`"imagePathList"\s*:\s*\[\s*"([^"]+)"`)
	aliImagePathEntryRe = regexp.MustCompile(`"(https?://ae\d*\.alicdn\.com/kf/[^"]+\.(?:jpg|jpeg|png|webp))"`)
	shopifyFeaturedRe   = regexp.MustCompile(`"featured_image"\s*:\s*"([^"]+)"`)
	shopifySrcRe        = regexp.MustCompile(`"src"\s*:\s*"((?:https?:)?//cdn\.shopify\.com/[^"]+)"`)
	ebayImageRe         = regexp.MustCompile(`"(https://i\.ebayimg\.com/images/g/[^"]+)"`)
	etsyImageRe         = regexp.MustCompile(`"(https://i\.etsystatic\.com/[^"]+)"`)
	walmartImageRe      = regexp.MustCompile(`"(https://i5\.walmartimages\.com/[^"]+)"`)
)

func builtinPlatforms() []*Platform {
	return []*Platform{
		{
			Name:  "amazon",
			Hosts: []string{"amazon.", "amzn."},
			Selectors: Selectors{
				Title:         []string{"#productTitle", "#title"},
				Description:   []string{"#productDescription", "#feature-bullets"},
				Brand:         []string{"#bylineInfo", "#brand", "a#brand", ".po-brand .po-break-word"},
				Price:         []string{"#corePrice_feature_div .a-offscreen", "#corePriceDisplay_desktop_feature_div .a-offscreen", ".a-price[data-a-color='price'] .a-offscreen", "#priceblock_ourprice", "#priceblock_dealprice", "#price_inside_buybox"},
				OriginalPrice: []string{".basisPrice .a-offscreen", ".a-price.a-text-price .a-offscreen", "#priceblock_listprice"},
				Stock:         []string{"#availability", "#outOfStock", "#availabilityInsideBuyBox_feature_div"},
				AddToCart:     []string{"#add-to-cart-button", "#buy-now-button"},
				Shipping:      []string{"#mir-layout-DELIVERY_BLOCK", "#deliveryBlockMessage", "#delivery-block-ags-dcp-container"},
				Breadcrumb:    []string{"#wayfinding-breadcrumbs_feature_div", "#wayfinding-breadcrumbs_container"},
				Images:        []string{"#landingImage", "#imgTagWrapperId img", "#imageBlock img.a-dynamic-image", "#main-image-container img"},
				Thumbnails:    []string{"#altImages li.imageThumbnail img", "#altImages img"},
				Expansion:     []string{"#altImages li.imageThumbnail", "#altImages .a-button-thumbnail"},
				Gallery:       []string{"#imageBlock", "#main-image-container"},
				Swatches: []Swatch{
					{Name: "color", Selector: "#variation_color_name li img", Attr: "alt"},
					{Name: "size", Selector: "#variation_size_name li .a-size-base"},
					{Name: "style", Selector: "#variation_style_name li img", Attr: "alt"},
				},
				Reviews: []ReviewSelectors{{
					Container: "[data-hook='review']",
					Author:    ".a-profile-name",
					Rating:    "[data-hook='review-star-rating'], [data-hook='cmps-review-star-rating']",
					Text:      "[data-hook='review-body']",
					Date:      "[data-hook='review-date']",
					Images:    "img.review-image-tile",
				}},
				Specs: []string{"#productDetails_techSpec_section_1", "#productDetails_detailBullets_sections1", "#detailBullets_feature_div", "#productOverview_feature_div table", "#tech table"},
			},
			ScriptImages: []*regexp.Regexp{amazonHiResRe, amazonLargeRe},
		},
		{
			Name:  "ebay",
			Hosts: []string{"ebay."},
			Selectors: Selectors{
				Title:         []string{".x-item-title__mainTitle", "h1.x-item-title", "#itemTitle"},
				Brand:         []string{".ux-labels-values--brand .ux-labels-values__values", "[itemprop='brand']"},
				Price:         []string{".x-price-primary .ux-textspans", "#prcIsum", "#mm-saleDscPrc"},
				OriginalPrice: []string{".x-additional-info__textual-display .ux-textspans--STRIKETHROUGH", "#orgPrc"},
				Stock:         []string{".x-quantity__availability", "#qtySubTxt", ".d-quantity__availability"},
				AddToCart:     []string{"#atcBtn_btn_1", "#isCartBtn_btn"},
				Shipping:      []string{".ux-labels-values--shipping", "#fshippingCost", ".d-shipping-minview"},
				Breadcrumb:    []string{".seo-breadcrumbs-container", "nav.breadcrumbs"},
				Images:        []string{".ux-image-carousel-item img", "#icImg"},
				Thumbnails:    []string{".ux-image-filmstrip-carousel-item img", ".ux-image-grid-item img"},
				Expansion:     []string{".ux-image-filmstrip-carousel-item", ".ux-image-grid-item"},
				Gallery:       []string{".ux-image-carousel", "#PicturePanel"},
				Reviews: []ReviewSelectors{{
					Container: ".fdbk-container",
					Author:    ".fdbk-container__details__info__username",
					Rating:    ".fdbk-container__details__info__divide",
					Text:      ".fdbk-container__details__comment",
					Date:      ".fdbk-container__details__time-period",
				}},
				Specs: []string{".ux-layout-section-evo__item", ".ux-layout-section--features", "#viTabs_0_is"},
			},
			ScriptImages: []*regexp.Regexp{ebayImageRe},
		},
		{
			Name:  "aliexpress",
			Hosts: []string{"aliexpress."},
			Selectors: Selectors{
				Title:         []string{"h1[data-pl='product-title']", ".product-title-text", "h1"},
				Brand:         []string{".store-header--storeName--vINzvPw", ".shop-name a"},
				Price:         []string{".product-price-current", "[class*='price--currentPriceText']", ".uniform-banner-box-price"},
				OriginalPrice: []string{".product-price-original", "[class*='price--originalText']"},
				Stock:         []string{".product-quantity-tip", "[class*='quantity--info']"},
				AddToCart:     []string{"button[class*='add-to-cart']", ".addcart"},
				Shipping:      []string{"[class*='dynamic-shipping']", ".product-shipping"},
				Breadcrumb:    []string{".breadcrumb", "[class*='breadcrumb']"},
				Images:        []string{".magnifier-image", "[class*='magnifier--image']", ".image-view-magnifier-wrap img"},
				Thumbnails:    []string{"[class*='slider--img'] img", ".images-view-item img"},
				Expansion:     []string{"[class*='slider--item']", ".images-view-item"},
				Gallery:       []string{"[class*='image-view']", ".images-view-wrap"},
				Swatches: []Swatch{
					{Name: "color", Selector: "[class*='sku-item--image'] img", Attr: "alt"},
					{Name: "option", Selector: "[class*='sku-item--text'] span"},
				},
				Reviews: []ReviewSelectors{{
					Container: "[class*='list--itemBox']",
					Author:    "[class*='list--itemInfo'] span",
					Rating:    "[class*='stars--box']",
					Text:      "[class*='list--itemReview']",
					Images:    "[class*='list--itemThumbnails'] img",
				}},
				Specs: []string{"[class*='specification--list']", ".product-prop-list"},
			},
			ScriptImages: []*regexp.Regexp{aliImagePathListRe, aliImagePathEntryRe},
		},
		{
			Name:  "alibaba",
			Hosts: []string{"alibaba."},
			Selectors: Selectors{
				Title:      []string{".product-title h1", "h1[title]"},
				Price:      []string{".price-range .price", ".product-price .price"},
				Images:     []string{".main-image img", ".detail-main-img img"},
				Thumbnails: []string{".thumb-list img", ".detail-next-slick-slide img"},
				Expansion:  []string{".thumb-list .thumb-item"},
				Specs:      []string{".attribute-list", ".do-entry-list"},
			},
		},
		{
			Name:  "temu",
			Hosts: []string{"temu."},
			Selectors: Selectors{
				Title:         []string{"h1[class*='title']", "._2rn4tqXP"},
				Price:         []string{"[data-type='price']", "[class*='goodsPrice']"},
				OriginalPrice: []string{"[class*='marketPrice']", "[class*='linePrice']"},
				Images:        []string{"[class*='mainImage'] img", "[class*='goods-img'] img"},
				Thumbnails:    []string{"[class*='thumbnail'] img"},
				Expansion:     []string{"[class*='thumbnail'] > div"},
			},
		},
		{
			Name:  "shein",
			Hosts: []string{"shein."},
			Selectors: Selectors{
				Title:         []string{".product-intro__head-name", "h1.fsp-element"},
				Price:         []string{".product-intro__head-mainprice .from", ".product-intro__head-price .original"},
				OriginalPrice: []string{".product-intro__head-mainprice .del-price", ".product-intro__head-price .del"},
				Stock:         []string{".product-intro__size-tips", ".product-intro__sold-out-tips"},
				AddToCart:     []string{".product-intro__add-btn button", ".she-btn-black"},
				Images:        []string{".product-intro__main-item img", ".crop-image-container img"},
				Thumbnails:    []string{".product-intro__thumbs-item img"},
				Expansion:     []string{".product-intro__thumbs-item"},
				Swatches: []Swatch{
					{Name: "size", Selector: ".product-intro__size-radio-inner"},
					{Name: "color", Selector: ".product-intro__color-radio", Attr: "aria-label"},
				},
				Specs: []string{".product-intro__description-table"},
			},
		},
		{
			Name:  "wish",
			Hosts: []string{"wish.com"},
			Selectors: Selectors{
				Title:  []string{"[class*='PurchaseContainer__Name']", "h1"},
				Price:  []string{"[class*='PurchaseContainer__ActualPrice']"},
				Images: []string{"[class*='ProductImageContainer'] img"},
			},
		},
		{
			Name:  "etsy",
			Hosts: []string{"etsy."},
			Selectors: Selectors{
				Title:         []string{"h1[data-buy-box-listing-title]", "h1.wt-text-body-01"},
				Brand:         []string{"[data-shop-name]", ".wt-text-body-01 a[href*='/shop/']"},
				Price:         []string{"[data-buy-box-region='price'] .wt-text-title-03", ".wt-text-title-larger"},
				OriginalPrice: []string{"[data-buy-box-region='price'] .wt-text-strikethrough"},
				Stock:         []string{"[data-buy-box-region='stock-indicator']", ".wt-text-caption.wt-text-red"},
				AddToCart:     []string{"[data-add-to-cart-button] button", "button.add-to-cart-button"},
				Images:        []string{".listing-page-image-carousel-component img", "[data-carousel-pane] img"},
				Thumbnails:    []string{".carousel-pagination-item-v2 img"},
				Expansion:     []string{".carousel-pagination-item-v2"},
				Swatches:      []Swatch{{Name: "option", Selector: "select[id^='variation-selector'] option"}},
				Reviews: []ReviewSelectors{{
					Container: "[data-review-region]",
					Author:    "a[href*='/people/']",
					Rating:    "input[name='rating']",
					Text:      "[id^='review-preview-toggle']",
					Date:      ".wt-text-caption",
				}},
			},
			ScriptImages: []*regexp.Regexp{etsyImageRe},
		},
		{
			Name:  "walmart",
			Hosts: []string{"walmart."},
			Selectors: Selectors{
				Title:         []string{"h1[itemprop='name']", "#main-title"},
				Brand:         []string{"a[link-identifier='brandName']", "[data-testid='brand-name']"},
				Price:         []string{"[itemprop='price']", "[data-testid='price-wrap'] span"},
				OriginalPrice: []string{"[data-testid='list-price']", ".strike"},
				Stock:         []string{"[data-testid='fulfillment-badge']", "[data-testid='stock-status']"},
				AddToCart:     []string{"[data-automation-id='atc']", "button[data-tl-id='ProductPrimaryCTA-cta_add_to_cart_button']"},
				Shipping:      []string{"[data-testid='fulfillment-shipping-text']"},
				Images:        []string{"[data-testid='hero-image-container'] img", "[data-testid='media-thumbnail'] img"},
				Thumbnails:    []string{"[data-testid='media-thumbnail'] img"},
				Expansion:     []string{"[data-testid='media-thumbnail']"},
				Reviews: []ReviewSelectors{{
					Container: "[data-testid='enhanced-review-content']",
					Author:    ".f6.gray",
					Rating:    ".w_iUH7",
					Text:      "span.tl-m",
				}},
				Specs: []string{"[data-testid='product-specifications'] table", ".specifications table"},
			},
			ScriptImages: []*regexp.Regexp{walmartImageRe},
		},
		{
			Name:  "bestbuy",
			Hosts: []string{"bestbuy."},
			Selectors: Selectors{
				Title:      []string{".sku-title h1", "h1.heading-5"},
				Brand:      []string{"[data-testid='product-brand'] a"},
				Price:      []string{".priceView-customer-price span[aria-hidden='true']", ".priceView-hero-price span"},
				Stock:      []string{".fulfillment-add-to-cart-button"},
				AddToCart:  []string{".add-to-cart-button"},
				Images:     []string{".primary-image", ".media-gallery img"},
				Thumbnails: []string{".thumbnail-list img"},
				Specs:      []string{".specifications-list", ".spec-table"},
			},
		},
		{
			Name:  "target",
			Hosts: []string{"target.com"},
			Selectors: Selectors{
				Title:     []string{"h1[data-test='product-title']"},
				Price:     []string{"[data-test='product-price']"},
				Stock:     []string{"[data-test='fulfillment-cell-shipping']"},
				AddToCart: []string{"[data-test='shippingButton']", "[data-test='addToCartButton']"},
				Images:    []string{"[data-test='image-gallery-item'] img"},
				Specs:     []string{"[data-test='item-details-specifications']"},
			},
		},
		{
			Name:  "cdiscount",
			Hosts: []string{"cdiscount."},
			Selectors: Selectors{
				Title:         []string{"h1[itemprop='name']", ".fpDesCol h1"},
				Brand:         []string{".fpBrandName", "[itemprop='brand'] a"},
				Price:         []string{".fpPrice", "[itemprop='price']", ".c-price--promo"},
				OriginalPrice: []string{".fpStriked", ".c-price--strikethrough"},
				Stock:         []string{".fpStock", ".c-stock"},
				AddToCart:     []string{"#fpAddBsk", "button[data-cs-override-id='AddToBasket']"},
				Shipping:      []string{".fpDelivery", ".c-delivery"},
				Breadcrumb:    []string{"#bc", ".c-breadcrumbs"},
				Images:        []string{"#fpZnPrdMain img", ".c-productViewer img"},
				Thumbnails:    []string{".fpMainImgThumbs img"},
				Expansion:     []string{".fpMainImgThumbs li"},
				Specs:         []string{".fpDescTb table", "#fpBlocCaract table"},
			},
		},
		{
			Name:  "fnac",
			Hosts: []string{"fnac."},
			Selectors: Selectors{
				Title:         []string{".f-productHeader-Title", "h1.f-productHeader__heading"},
				Brand:         []string{".f-productHeader__brand a"},
				Price:         []string{".f-faPriceBox__price.userPrice", ".userPrice"},
				OriginalPrice: []string{".f-faPriceBox__price.oldPrice", ".oldPrice"},
				Stock:         []string{".f-buyBox-availabilityStatus-available", ".f-buyBox-availability"},
				AddToCart:     []string{".f-buyBox-buttons button", ".ff-button-red"},
				Shipping:      []string{".f-buyBox-shipping"},
				Breadcrumb:    []string{".f-breadcrumb"},
				Images:        []string{".f-productVisuals-mainMedia img", ".f-productMedias__viewItem img"},
				Thumbnails:    []string{".f-productVisuals-thumbnails img"},
				Expansion:     []string{".f-productVisuals-thumbnails li"},
				Specs:         []string{".f-productDetails-table", ".Feature-list"},
			},
		},
		{
			Name:  "darty",
			Hosts: []string{"darty."},
			Selectors: Selectors{
				Title:      []string{".product_head h1", "h1.product-title"},
				Brand:      []string{".product_brand a", "[itemprop='brand']"},
				Price:      []string{".product_price .darty_prix", ".product-price__price"},
				Stock:      []string{".product_availability", ".availability-status"},
				AddToCart:  []string{".add_to_basket", "button.add-to-cart"},
				Images:     []string{".product_main_image img", ".darty_product_picture_main_pic_container img"},
				Thumbnails: []string{".product_thumbnails img"},
				Specs:      []string{".product_features table", ".characteristics table"},
			},
		},
		{
			Name:  "boulanger",
			Hosts: []string{"boulanger."},
			Selectors: Selectors{
				Title:     []string{"h1.product-title__main", ".product-title h1"},
				Price:     []string{".price__amount", ".fix-price"},
				Stock:     []string{".delivery-availability", ".product-availability"},
				AddToCart: []string{"button.add-to-cart", "[data-test='add-to-cart']"},
				Images:    []string{".product-gallery img", ".swiper-slide img"},
				Specs:     []string{".characteristic__table", ".product-characteristics table"},
			},
		},
		{
			Name:  "leboncoin",
			Hosts: []string{"leboncoin."},
			Selectors: Selectors{
				Title:    []string{"[data-qa-id='adview_title'] h1", "h1[data-qa-id='adview_title']"},
				Price:    []string{"[data-qa-id='adview_price']", "[data-test-id='price']"},
				Images:   []string{"[data-qa-id='adview_gallery_container'] img", ".slick-slide img"},
				Specs:    []string{"[data-qa-id='criteria_container']"},
				Shipping: []string{"[data-qa-id='adview_shipping']"},
			},
		},
		{
			Name:  "rakuten",
			Hosts: []string{"rakuten."},
			Selectors: Selectors{
				Title:         []string{".detailHeadline h1", "h1.title"},
				Price:         []string{".price .value", ".spacerBottomXs .price"},
				OriginalPrice: []string{".oldPrice", ".crossedPrice"},
				Stock:         []string{".stock", ".availability"},
				Images:        []string{".prdMainPhoto img", ".visuel img"},
				Thumbnails:    []string{".prdThumbs img"},
				Specs:         []string{".spec table", ".edsProductInfo table"},
			},
		},
		{
			Name:  "manomano",
			Hosts: []string{"manomano."},
			Selectors: Selectors{
				Title:         []string{"h1[data-testid='product-title']", "h1"},
				Brand:         []string{"[data-testid='brand-link']"},
				Price:         []string{"[data-testid='price-main']", "[data-testid='price']"},
				OriginalPrice: []string{"[data-testid='price-retail']"},
				AddToCart:     []string{"[data-testid='add-to-cart-button']"},
				Images:        []string{"[data-testid='product-gallery'] img"},
				Specs:         []string{"[data-testid='technical-specifications'] table"},
			},
		},
		{
			Name:  "zalando",
			Hosts: []string{"zalando."},
			Selectors: Selectors{
				Title:      []string{"h1 span.EKabf7", "h1"},
				Brand:      []string{"h3 span", "[data-testid='pdp-brand-name']"},
				Price:      []string{"[data-testid='pdp-price-container'] p span", ".sDq_FX"},
				Stock:      []string{"[data-testid='pdp-stock-info']"},
				AddToCart:  []string{"[data-testid='pdp-add-to-cart']"},
				Images:     []string{"[data-testid='pdp-gallery'] img"},
				Thumbnails: []string{"ul[aria-label] li button img"},
				Expansion:  []string{"ul[aria-label] li button"},
				Swatches:   []Swatch{{Name: "size", Selector: "[data-testid='pdp-size-picker'] label span"}},
			},
		},
		{
			Name:  "asos",
			Hosts: []string{"asos."},
			Selectors: Selectors{
				Title:         []string{"[data-testid='product-title']", ".product-hero h1"},
				Price:         []string{"[data-testid='current-price']", "[data-id='current-price']"},
				OriginalPrice: []string{"[data-testid='previous-price']"},
				Stock:         []string{"[data-testid='out-of-stock']"},
				AddToCart:     []string{"[data-testid='add-button']"},
				Images:        []string{".fullImageContainer img", "[data-testid='gallery'] img"},
				Thumbnails:    []string{".thumbnails img"},
				Swatches:      []Swatch{{Name: "size", Selector: "[data-testid='variant-selector'] option"}},
			},
		},
		{
			Name:  "decathlon",
			Hosts: []string{"decathlon."},
			Selectors: Selectors{
				Title:         []string{"h1.product-name", ".product-info h1"},
				Brand:         []string{".product-brand", "[data-anly='product-brand']"},
				Price:         []string{".vtmn-price", ".prc__active-price"},
				OriginalPrice: []string{".vtmn-price_variant--barred", ".prc__previous"},
				Stock:         []string{".stock-info", ".product-availability"},
				AddToCart:     []string{".add-to-cart-button", "[data-anly='add-to-cart']"},
				Images:        []string{".product-gallery img", ".swiper-slide img"},
				Thumbnails:    []string{".product-thumbnails img"},
				Expansion:     []string{".product-thumbnails button"},
				Swatches:      []Swatch{{Name: "size", Selector: ".size-selector option"}},
				Specs:         []string{".product-specs dl", ".technical-info table"},
			},
		},
		{
			Name:  "leroymerlin",
			Hosts: []string{"leroymerlin."},
			Selectors: Selectors{
				Title:      []string{"h1.a-productTitle", "h1"},
				Price:      []string{".m-price__line .a-price", "[data-testid='price']"},
				Stock:      []string{".m-stock", ".js-stock-availability"},
				AddToCart:  []string{".js-add-to-cart", "button[data-cerberus='add-to-cart']"},
				Images:     []string{".m-product-media img", ".o-product-gallery img"},
				Thumbnails: []string{".m-product-media__thumbnails img"},
				Specs:      []string{".m-product-attr-table", ".o-productFeatures table"},
			},
		},
		{
			Name:  "ikea",
			Hosts: []string{"ikea."},
			Selectors: Selectors{
				Title:      []string{".pip-header-section__title--big", "h1"},
				Brand:      []string{".pip-header-section__title--big"},
				Price:      []string{".pip-temp-price__integer", ".pip-price__integer"},
				Stock:      []string{".pip-status__label", ".pip-stockcheck__text"},
				AddToCart:  []string{".pip-btn--emphasised"},
				Images:     []string{".pip-media-grid__media-image img", ".pip-image"},
				Thumbnails: []string{".pip-thumbnail img"},
				Specs:      []string{".pip-product-details__container dl"},
			},
		},
		{
			Name:  "otto",
			Hosts: []string{"otto.de"},
			Selectors: Selectors{
				Title:     []string{"h1[data-qa='variationName']", ".pdp_short-info__main-name"},
				Brand:     []string{".pdp_short-info__brand-name"},
				Price:     []string{".pdp_price__price", "[data-qa='price']"},
				Stock:     []string{".pdp_availability"},
				AddToCart: []string{"[data-qa='addToBasket']"},
				Images:    []string{".pdp_main-image img", ".prd_image img"},
				Specs:     []string{".dv_characteristicsTable"},
			},
		},
		{
			Name:  "bol",
			Hosts: []string{"bol.com"},
			Selectors: Selectors{
				Title:     []string{"h1[data-test='title']", ".page-heading"},
				Brand:     []string{"[data-role='BRAND']"},
				Price:     []string{"[data-test='price']", ".promo-price"},
				Stock:     []string{"[data-test='delivery-highlight']"},
				AddToCart: []string{"[data-test='add-to-basket']"},
				Images:    []string{"[data-test='product-image'] img", ".js_selected_image"},
				Specs:     []string{".specs__list", "[data-test='specifications'] dl"},
			},
		},
		{
			Name:  "allegro",
			Hosts: []string{"allegro."},
			Selectors: Selectors{
				Title:  []string{"h1[itemprop='name']", "h1"},
				Price:  []string{"[itemprop='price']", "[aria-label*='cena']"},
				Images: []string{"[data-box-name='showoffer.gallery'] img"},
				Specs:  []string{"[data-box-name='Parameters'] table", "[data-box-name='Parameters'] ul"},
			},
		},
		{
			Name:  "mercadolibre",
			Hosts: []string{"mercadolibre.", "mercadolivre."},
			Selectors: Selectors{
				Title:         []string{"h1.ui-pdp-title"},
				Price:         []string{".ui-pdp-price__second-line .andes-money-amount__fraction"},
				OriginalPrice: []string{".ui-pdp-price__original-value .andes-money-amount__fraction"},
				Stock:         []string{".ui-pdp-stock-information", ".ui-pdp-buybox__quantity__available"},
				AddToCart:     []string{".ui-pdp-actions__container button"},
				Images:        []string{".ui-pdp-gallery__figure img"},
				Thumbnails:    []string{".ui-pdp-thumbnail__picture img"},
				Expansion:     []string{".ui-pdp-thumbnail__picture"},
				Specs:         []string{".ui-pdp-specs__table table", ".andes-table"},
			},
		},
		{
			Name:  "carrefour",
			Hosts: []string{"carrefour."},
			Selectors: Selectors{
				Title:      []string{"h1.product-title", ".pdp-card__title"},
				Price:      []string{".product-price__amount", ".product-price__amount-value"},
				Stock:      []string{".product-availability"},
				AddToCart:  []string{".add-to-cart button"},
				Images:     []string{".pdp-hero__image img", ".product-gallery img"},
				Breadcrumb: []string{".breadcrumb-trail"},
				Specs:      []string{".product-characteristics table"},
			},
		},
		{
			Name:  "shopify",
			Hosts: []string{"myshopify.com", "shopify."},
			Selectors: Selectors{
				Title:         []string{".product__title h1", ".product-single__title", "h1.product__title"},
				Brand:         []string{".product__vendor", ".product-single__vendor"},
				Price:         []string{".price-item--sale", ".price-item--regular", ".product__price", "[data-product-price]"},
				OriginalPrice: []string{".price-item--regular s", ".price__compare s", "[data-compare-price]", ".product__price--compare"},
				Stock:         []string{".product__inventory", "[data-inventory]"},
				AddToCart:     []string{"button[name='add']", "form[action*='/cart/add'] button[type='submit']"},
				Images:        []string{".product__media img", ".product-single__photo img", ".product__main-photos img"},
				Thumbnails:    []string{".thumbnail-list img", ".product-single__thumbnails img"},
				Expansion:     []string{".thumbnail-list__item button", ".product-single__thumbnails a"},
				Gallery:       []string{".product__media-list", ".product-single__photos"},
				Swatches: []Swatch{
					{Name: "option", Selector: "variant-radios input[type='radio']", Attr: "value"},
					{Name: "option", Selector: ".swatch-element", Attr: "data-value"},
				},
				Specs: []string{".product__description table", ".product-single__description table"},
			},
			ScriptImages: []*regexp.Regexp{shopifyFeaturedRe, shopifySrcRe},
		},
	}
}

// genericPlatform backs every field on every platform
func genericPlatform() *Platform {
	return &Platform{
		Name: Generic,
		Selectors: Selectors{
			Title: []string{
				"h1[itemprop='name']", "[itemprop='name'] h1", "h1.product-title", "h1.product_title",
				"h1[class*='title']", ".product-name h1", ".product-info h1", ".product-details h1",
				".product-title", "h1",
			},
			Description: []string{
				"[itemprop='description']", "#product-description", ".product-description",
				".product__description", "#description", ".description",
			},
			Brand: []string{
				"[itemprop='brand'] [itemprop='name']", "[itemprop='brand']", ".product-brand", ".brand-name",
				".product__vendor", "[class*='brand'] a", "[data-brand]", ".brand",
			},
			Price: []string{
				"[itemprop='price']", "[data-price]", ".product-price .price", ".price-current",
				".current-price", ".sale-price", ".special-price .price", ".product-price", ".price ins",
				".price",
			},
			OriginalPrice: []string{
				".old-price", ".was-price", ".price-was", ".regular-price", ".original-price",
				".compare-at-price", ".price-before", ".list-price", ".strike-price", ".price del",
				".price s", "del .amount", "s.price",
			},
			Stock: []string{
				"[itemprop='availability']", "#availability", ".availability", ".stock-status",
				".product-stock", ".stock", "#stock", "[class*='stock-level']", "[data-stock]", ".inventory",
			},
			AddToCart: []string{
				"#add-to-cart", "#addToCart", ".add-to-cart", ".add_to_cart_button", "button[name='add-to-cart']",
				"button[name='add']", "[data-action='add-to-cart']", "form[action*='cart'] button[type='submit']",
			},
			Shipping: []string{
				".shipping-info", ".delivery-info", "#shipping", ".shipping", ".delivery",
				"[class*='shipping']", "[class*='delivery']", "[class*='livraison']",
			},
			Breadcrumb: []string{
				"[itemtype*='BreadcrumbList']", "nav[aria-label*='readcrumb']", ".breadcrumb", ".breadcrumbs",
				"#breadcrumb", "[class*='breadcrumb']",
			},
			Images: []string{
				"[itemprop='image']", ".product-gallery img", ".product-images img", ".product-image img",
				".product__media img", ".woocommerce-product-gallery img", ".gallery img", "#product-image img",
			},
			Thumbnails: []string{
				".thumbnails img", ".product-thumbnails img", ".thumbnail img", "[class*='thumb'] img",
			},
			Expansion: []string{
				".product-thumbnails li", ".thumbnails li", "[data-thumb]", ".slick-dots li",
				".swiper-pagination-bullet",
			},
			Gallery: []string{
				".product-gallery", ".product-images", ".product-media", ".gallery", "[class*='gallery']",
			},
			Swatches: []Swatch{
				{Name: "color", Selector: "[data-option-name*='olor'] [data-value]", Attr: "data-value"},
				{Name: "size", Selector: "[data-option-name*='ize'] [data-value]", Attr: "data-value"},
				{Name: "option", Selector: ".swatch [data-value]", Attr: "data-value"},
			},
			Reviews: []ReviewSelectors{
				{
					Container: "[itemprop='review']",
					Author:    "[itemprop='author']",
					Rating:    "[itemprop='ratingValue']",
					Text:      "[itemprop='reviewBody'], [itemprop='description']",
					Date:      "[itemprop='datePublished']",
					Images:    "img",
				},
				{
					Container: ".review, .review-item, .customer-review, [class*='review-card']",
					Author:    ".review-author, .author, [class*='author']",
					Rating:    ".rating, .stars, [class*='rating'], [class*='star']",
					Text:      ".review-text, .review-content, .review-body, p",
					Date:      ".review-date, time, [class*='date']",
					Images:    ".review-images img, [class*='review-image'] img",
				},
			},
			Specs: []string{
				".product-specifications table", ".specifications table", "#specifications table",
				".product-attributes table", "table.woocommerce-product-attributes", ".product-specs dl",
				".specifications dl", ".product-features table", "[class*='spec'] table", "[class*='spec'] dl",
				"[class*='spec'] ul", ".product-details table",
			},
		},
	}
}
