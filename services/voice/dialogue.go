package voice

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/limat-tech/voicebot/models"
	"github.com/limat-tech/voicebot/services/checkout"
)

// Store is the slice of the shop the dialogue router acts on: catalog lookup,
// cart upsert and checkout. The GORM-backed implementation lives in store.go.
type Store interface {
	// FindProductByName substring-matches the catalog on the given language's
	// name field, returning nil when nothing matches.
	FindProductByName(name, lang string) (*models.Product, error)
	AddToCart(customerID, productID uint, quantity int) error
	Checkout(customerID uint) (*checkout.Result, error)
}

// Result is what a single dialogue turn produces. Downstream failures are
// folded into ResponseText; they never surface as errors to the HTTP caller.
type Result struct {
	Transcript   string           `json:"transcript"`
	Language     string           `json:"language"`
	Intent       Intent           `json:"intent"`
	Entities     []Entity         `json:"entities"`
	ResponseText string           `json:"response_text"`
	Order        *checkout.Result `json:"order,omitempty"`
}

// DialogueRouter classifies a transcript and dispatches to shop actions.
// It is stateless: no session memory is kept between turns.
type DialogueRouter struct {
	store  Store
	parser IntentParser
}

func NewDialogueRouter(store Store, parser IntentParser) *DialogueRouter {
	return &DialogueRouter{store: store, parser: parser}
}

// Respond handles one dialogue turn for the acting customer.
func (d *DialogueRouter) Respond(ctx context.Context, transcript string, customerID uint) *Result {
	if strings.TrimSpace(transcript) == "" {
		// Nothing to classify; answer in the default locale.
		return &Result{
			Transcript:   transcript,
			Language:     LangEnglish,
			Intent:       Intent{Name: IntentTranscriptionError},
			ResponseText: responseCouldNotHear,
		}
	}

	lang := DetectLanguage(transcript)
	result := &Result{Transcript: transcript, Language: lang}

	parsed, err := d.parser.Parse(ctx, transcript, NLUModelFor(lang))
	if err != nil {
		log.Printf("nlu parse failed (%s): %v", NLUModelFor(lang), err)
		result.Intent = Intent{Name: IntentNLUUnavailable}
		result.ResponseText = pick(nluUnavailable, lang)
		return result
	}

	result.Intent = parsed.Intent
	result.Entities = parsed.Entities

	switch parsed.Intent.Name {
	case IntentSearchProduct:
		item := parsed.ProductName()
		if item == "" {
			result.ResponseText = pick(promptSearchItem, lang)
			return result
		}
		// Acknowledge only; the actual search runs through the products API.
		result.ResponseText = responseSearching(lang, item)

	case IntentAddToCart:
		d.handleAddToCart(result, parsed, lang, customerID)

	case IntentGoToCheckout:
		d.handleCheckout(result, lang, customerID)

	case IntentGreet:
		result.ResponseText = pick(greetings, lang)

	default:
		result.ResponseText = pick(fallbacks, lang)
	}

	return result
}

func (d *DialogueRouter) handleAddToCart(result *Result, parsed *ParseResult, lang string, customerID uint) {
	item := parsed.ProductName()
	if item == "" {
		result.ResponseText = pick(promptAddItem, lang)
		return
	}

	product, err := d.store.FindProductByName(item, lang)
	if err != nil {
		log.Printf("catalog lookup failed for %q: %v", item, err)
		result.ResponseText = pick(addToCartFailed, lang)
		return
	}
	if product == nil {
		result.ResponseText = responseNotFound(lang, item)
		return
	}

	if err := d.store.AddToCart(customerID, product.ID, 1); err != nil {
		log.Printf("voice add to cart failed for customer %d, product %d: %v", customerID, product.ID, err)
		result.ResponseText = pick(addToCartFailed, lang)
		return
	}

	log.Printf("added product %d to cart for customer %d via voice", product.ID, customerID)
	result.ResponseText = responseAdded(lang, displayName(product, lang))
}

func (d *DialogueRouter) handleCheckout(result *Result, lang string, customerID uint) {
	order, err := d.store.Checkout(customerID)
	if err != nil {
		result.ResponseText = checkoutFailureMessage(err, lang)
		return
	}
	result.Order = order
	result.ResponseText = responseOrderPlaced(lang, order.TotalAmount)
}

func checkoutFailureMessage(err error, lang string) string {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return pick(checkoutEmptyCart, lang)
	case errors.Is(err, checkout.ErrInsufficientStock):
		return pick(checkoutOutOfStock, lang)
	case errors.Is(err, checkout.ErrProductUnavailable), errors.Is(err, checkout.ErrProductNotFound):
		return pick(checkoutUnavailable, lang)
	default:
		return pick(checkoutGenericFail, lang)
	}
}

func displayName(p *models.Product, lang string) string {
	if lang == LangArabic && p.NameAR != "" {
		return p.NameAR
	}
	return p.NameEN
}
