package faq

// Canned replies for the intents that bypass scoring.
const (
	GreetingResponse = `Hello! Welcome to Aurora Linen. I can help with our bedsheets, towels and duvets, thread count and GSM, ordering, shipping, returns and anything else about your order. What would you like to know?`

	ContactResponse = `You can reach the Aurora Linen team here:

Email: hello@auroralinen.in
Hospitality & bulk orders: b2b@auroralinen.in
Phone: +91 80 4567 8900 (customer care)
WhatsApp: +91 98450 12345
Address: Aurora Linen Experience Centre, 14 Residency Road, Bengaluru 560025, India

Business hours: Monday to Saturday, 10:00 AM to 6:00 PM IST

Follow us: instagram.com/auroralinen | facebook.com/auroralinen | linkedin.com/company/auroralinen`

	OrderDetailsResponse = `To see your order:

1. Sign in and open My Account > Orders.
2. Select the order to see the items, delivery address, payment method and current progress.
3. Card orders show the payment reference; Cash on Delivery orders show the amount due at the door.

Guest checkout? Use the link in your order confirmation email. If anything looks wrong, write to hello@auroralinen.in with your order number.`

	DefaultResponse = `I'm not sure I have an answer for that yet. I can help with:

- Products: bedsheets, towels, duvets, thread count (TC) and GSM
- Ordering: placing an order, bulk pricing, card and cash on delivery payments
- Shipping and delivery times
- Returns, exchanges and refunds
- Fabric care

For anything else, ask me to connect you with our team, or email hello@auroralinen.in and a person will get back to you within one working day.`
)

// quickQuestions are the starter chips shown before the first message.
var quickQuestions = []string{
	"What is Thread Count (TC) and why does it matter?",
	"What sizes do your bedsheets come in?",
	"How do I place an order?",
	"How do I track my order?",
	"What is your return policy?",
}

// QuickQuestions returns the conversation starters.
func QuickQuestions() []string {
	out := make([]string, len(quickQuestions))
	copy(out, quickQuestions)
	return out
}
