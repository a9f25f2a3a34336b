package certificate_controller

import (
	"github.com/harnoor-dev/event-cert-api/internal/certify"
)

// service is the shared certificate pipeline, injected at startup.
var service *certify.Service

// Setup wires the certificate pipeline into this controller package.
func Setup(svc *certify.Service) {
	service = svc
}
