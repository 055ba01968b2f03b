package constant

const (
	ChatMessageSenderUser = "user"
	ChatMessageSenderBot  = "bot"

	ChatSessionStateIdle             = "IDLE"
	ChatSessionStateAwaitingResponse = "AWAITING_RESPONSE"

	WelcomeMessage = "Hi! I'm the Aurora Linen assistant. Ask me about bedsheets, towels, thread count, ordering, shipping or returns."

	EscalationAcknowledgement = "Thanks, I've passed this conversation to our team. Someone will reply to %s within one working day."

	EscalationChannelNats  = "nats"
	EscalationChannelEmail = "email"
)

// WebSocket frame types sent to the chat widget.
const (
	ChatFrameTyping  = "typing"
	ChatFrameMessage = "message"
	ChatFrameError   = "error"
)
