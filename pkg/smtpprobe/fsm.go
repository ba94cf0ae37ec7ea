package smtpprobe

import "fmt"

// State enumerates the steps of the probe handshake. The session always moves
// forward: banner, hello, sender, recipient, then quit. Aborted captures a
// handshake abandoned before the recipient verdict.
type State int

const (
	// StateBanner awaits the 220 service-ready banner after connecting.
	StateBanner State = iota
	// StateHello awaits the acknowledgement of the EHLO command.
	StateHello
	// StateSender awaits the acknowledgement of the MAIL FROM command.
	StateSender
	// StateRecipient awaits the verdict on the RCPT TO command.
	StateRecipient
	// StateQuit means QUIT was commanded and the session is winding down.
	StateQuit
	// StateAborted means the handshake was abandoned before RCPT TO settled.
	StateAborted
)

// String returns a short name for the state, used in logs.
func (s State) String() string {
	switch s {
	case StateBanner:
		return "banner"
	case StateHello:
		return "hello"
	case StateSender:
		return "sender"
	case StateRecipient:
		return "recipient"
	case StateQuit:
		return "quit"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the session is finished once this state is reached.
func (s State) Terminal() bool {
	return s == StateQuit || s == StateAborted
}

// Command tells the transport driver what to transmit after a transition.
type Command int

const (
	// SendNothing transmits nothing.
	SendNothing Command = iota
	// SendHello transmits the EHLO greeting.
	SendHello
	// SendMailFrom transmits the sender declaration.
	SendMailFrom
	// SendRcptTo transmits the recipient declaration under test.
	SendRcptTo
	// SendQuit transmits the polite session termination.
	SendQuit
)

// Result is the probe verdict for one recipient.
type Result struct {
	// Deliverable reports whether the exchanger accepted the recipient.
	Deliverable bool
	// Code is the reply code that settled the verdict, zero if none did.
	Code int
	// Reason is the human-readable explanation carried into the outcome.
	Reason string
}

// codeReady is the only banner code that lets the handshake proceed.
const codeReady = 220

// accepted reports whether a reply code acknowledges the previous command.
// 251 ("user not local; will forward") counts as acceptance.
func accepted(code int) bool {
	return code >= 200 && code < 300
}

// Advance consumes one reply code in the given state and yields the next
// state, the command to transmit, and the verdict once one exists. It is
// pure: timeouts, IO errors and connection teardown are the transport
// driver's concern, which makes the handshake testable with synthetic reply
// sequences.
func Advance(state State, code int) (State, Command, *Result) {
	switch state {
	case StateBanner:
		if code == codeReady {
			return StateHello, SendHello, nil
		}

		return StateAborted, SendQuit, &Result{Code: code, Reason: fmt.Sprintf("unexpected greeting, code %d", code)}
	case StateHello:
		if accepted(code) {
			return StateSender, SendMailFrom, nil
		}

		return StateAborted, SendQuit, &Result{Code: code, Reason: fmt.Sprintf("greeting not accepted, code %d", code)}
	case StateSender:
		if accepted(code) {
			return StateRecipient, SendRcptTo, nil
		}

		return StateAborted, SendQuit, &Result{Code: code, Reason: fmt.Sprintf("sender declaration rejected, code %d", code)}
	case StateRecipient:
		if accepted(code) {
			return StateQuit, SendQuit, &Result{Deliverable: true, Code: code, Reason: "mailbox accepted"}
		}

		return StateQuit, SendQuit, &Result{Code: code, Reason: fmt.Sprintf("mailbox rejected, code %d", code)}
	default:
		// terminal states absorb whatever else the server says
		return state, SendNothing, nil
	}
}
