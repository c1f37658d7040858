package voice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Canned reply strings per supported language. The voice assistant always
// answers in the language it detected in the transcript; the "could not hear"
// reply is the one exception and uses the default locale.

const responseCouldNotHear = "I'm sorry, I couldn't hear you clearly. Please try again."

var greetings = map[string]string{
	LangEnglish: "Hello! How can I help you with your shopping list today?",
	LangArabic:  "مرحباً! كيف يمكنني مساعدتك في تسوقك اليوم؟",
}

var fallbacks = map[string]string{
	LangEnglish: "I'm not sure how to help with that, but I'm learning.",
	LangArabic:  "لست متأكداً كيف أساعدك في ذلك، لكنني ما زلت أتعلم.",
}

var nluUnavailable = map[string]string{
	LangEnglish: "I'm sorry, I can't understand requests right now. Please try again later.",
	LangArabic:  "عذراً، لا أستطيع فهم الطلبات حالياً. حاول مرة أخرى لاحقاً.",
}

var promptSearchItem = map[string]string{
	LangEnglish: "Please tell me which item you're looking for.",
	LangArabic:  "من فضلك أخبرني عن المنتج الذي تبحث عنه.",
}

var promptAddItem = map[string]string{
	LangEnglish: "Please specify which item you'd like to add to the cart.",
	LangArabic:  "من فضلك حدد المنتج الذي تريد إضافته إلى السلة.",
}

var checkoutEmptyCart = map[string]string{
	LangEnglish: "Your shopping cart is empty, there is nothing to check out.",
	LangArabic:  "سلة التسوق فارغة، لا يوجد ما يمكن شراؤه.",
}

var checkoutOutOfStock = map[string]string{
	LangEnglish: "I'm sorry, some items in your cart are no longer in stock.",
	LangArabic:  "عذراً، بعض المنتجات في سلتك لم تعد متوفرة في المخزون.",
}

var checkoutUnavailable = map[string]string{
	LangEnglish: "I'm sorry, a product in your cart is no longer available.",
	LangArabic:  "عذراً، أحد المنتجات في سلتك لم يعد متاحاً.",
}

var checkoutGenericFail = map[string]string{
	LangEnglish: "I'm sorry, I couldn't complete your checkout. Please try again.",
	LangArabic:  "عذراً، تعذر إتمام عملية الشراء. حاول مرة أخرى.",
}

var addToCartFailed = map[string]string{
	LangEnglish: "I'm sorry, I couldn't add that item to your cart right now.",
	LangArabic:  "عذراً، تعذر إضافة هذا المنتج إلى سلتك الآن.",
}

func pick(table map[string]string, lang string) string {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[LangEnglish]
}

func responseSearching(lang, item string) string {
	if lang == LangArabic {
		return fmt.Sprintf("جاري البحث عن %s الآن.", item)
	}
	return fmt.Sprintf("Searching for %s now.", item)
}

func responseNotFound(lang, item string) string {
	if lang == LangArabic {
		return fmt.Sprintf("عذراً، لم أجد %s في متجرنا.", item)
	}
	return fmt.Sprintf("I'm sorry, I couldn't find %s in our store.", item)
}

func responseAdded(lang, name string) string {
	if lang == LangArabic {
		return fmt.Sprintf("حسناً، تمت إضافة %s إلى سلتك.", name)
	}
	return fmt.Sprintf("Okay, I've added %s to your cart.", name)
}

func responseOrderPlaced(lang string, total decimal.Decimal) string {
	if lang == LangArabic {
		return fmt.Sprintf("تم تأكيد طلبك بنجاح. الإجمالي %s.", total.StringFixed(2))
	}
	return fmt.Sprintf("Your order has been placed. The total is %s.", total.StringFixed(2))
}
