// Package response shapes every API reply as the {code, msg, data}
// envelope. Failures keep HTTP 200 and carry the error in the envelope
// code, so clients switch on one field.
package response

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

// envelopeErr pairs an envelope code with its message; proxyutil reads
// the code through the Code method.
type envelopeErr struct {
	code uint32
	msg  string
}

func (e envelopeErr) Error() string {
	return e.msg
}

func (e envelopeErr) Code() uint32 {
	return e.code
}

func AsCodeErr(code uint32, msg string) error {
	return envelopeErr{code: code, msg: msg}
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

func Error(c *gin.Context, code int, message string) {
	proxyutil.FailJson(c, 200, AsCodeErr(uint32(code), message))
}
