package pawdialog

// ReplySink delivers an encoded response to the caller
type ReplySink func(Response)

// Reply is the single-use reply slot bound to one inbound call.
// Exactly one of SendOK or SendError may succeed; later writes are dropped.
type Reply struct {
	id     string
	sink   ReplySink
	sent   bool
	logger *Logger
}

// NewReply creates a reply slot that writes to sink
func NewReply(id string, sink ReplySink, logger *Logger) *Reply {
	return &Reply{
		id:     id,
		sink:   sink,
		logger: logger,
	}
}

// ID returns the id of the call this slot answers
func (r *Reply) ID() string {
	return r.id
}

// Sent reports whether a reply has been written
func (r *Reply) Sent() bool {
	return r.sent
}

// SendOK writes a success value; nil means "no value"
func (r *Reply) SendOK(value interface{}) bool {
	return r.send(Response{ID: r.id, Result: value})
}

// SendError writes an error reply
func (r *Reply) SendError(code, message string, details interface{}) bool {
	return r.SendErr(&MethodError{Code: code, Message: message, Details: details})
}

// SendErr writes an error reply from a MethodError
func (r *Reply) SendErr(err *MethodError) bool {
	return r.send(Response{ID: r.id, Error: err})
}

func (r *Reply) send(resp Response) bool {
	if r.sent {
		r.logger.ErrorCat(CatReply, "Reply for call %s already sent, dropping second write", r.id)
		return false
	}
	r.sent = true

	if resp.Error != nil {
		r.logger.TraceCat(CatReply, "Call %s -> error %s", r.id, resp.Error.Code)
	} else {
		r.logger.TraceCat(CatReply, "Call %s -> %v", r.id, resp.Result)
	}

	if r.sink != nil {
		r.sink(resp)
	}
	return true
}
