package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/harnoor-dev/event-cert-api/api"
	certificate_controller "github.com/harnoor-dev/event-cert-api/api/controllers/certificate"
	attendancemodel "github.com/harnoor-dev/event-cert-api/api/model/attendanceModel"
	certificatemodel "github.com/harnoor-dev/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	settingmodel "github.com/harnoor-dev/event-cert-api/api/model/settingModel"
	usermodel "github.com/harnoor-dev/event-cert-api/api/model/userModel"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/config"
	"github.com/harnoor-dev/event-cert-api/common/gorm"
	"github.com/harnoor-dev/event-cert-api/common/mongo"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/internal/certify"
	"github.com/harnoor-dev/event-cert-api/internal/pdfrender"
)

func main() {
	isPushDB := flag.Bool("PushDB", false, "Run database migration")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	flag.Parse()

	config.LoadConfig()

	if *isPushDB {
		gorm.Push_db()
		if !*isRunAfter {
			return
		}
	}

	gorm.InitGorm()
	mongo.InitMongo()
	util.InitDialer()
	util.InitRedis()

	if err := util.InitMinIO(); err != nil {
		slog.Warn("MinIO initialization failed, object storage disabled", "error", err)
	}

	service := buildCertifyService()
	certificate_controller.Setup(service)
	certify.StartAutoSendJob(service)

	api.InitFiber()
}

func buildCertifyService() *certify.Service {
	var signer *pdfrender.Signer
	if common.Config.SigningEnabled != nil && *common.Config.SigningEnabled {
		loaded, err := pdfrender.NewSigner(
			*common.Config.SigningCertPath,
			*common.Config.SigningKeyPath,
			stringOr(common.Config.CollegeName, "DAV College Jalandhar"),
		)
		if err != nil {
			slog.Warn("PDF signing disabled, keypair load failed", "error", err)
		} else {
			signer = loaded
		}
	}

	service := &certify.Service{
		Events:       eventmodel.NewEventRepository(common.Gorm),
		Attendance:   attendancemodel.NewAttendanceRepository(common.Gorm),
		Certificates: certificatemodel.NewCertificateRepository(common.Gorm),
		Settings:     settingmodel.NewSettingRepository(common.Gorm),
		Users:        usermodel.NewUserRepository(common.Gorm),
		Templates:    certify.NewTemplateStore(stringOr(common.Config.TemplateDir, "templates")),
		Renderer:     pdfrender.New(signer),
		Mailer: certify.NewDispatcher(
			common.Dialer,
			*common.Config.MailUser,
			stringOr(common.Config.CollegeName, "DAV College Jalandhar"),
		),
		OutputDir:  stringOr(common.Config.OutputDir, "generated_certificates"),
		VerifyHost: *common.Config.VerifyHost,
	}

	// PDF copies go to object storage when MinIO is available.
	if common.MinIOClient != nil && common.Config.BucketCert != nil {
		service.UploadPDF = func(ctx context.Context, eventId string, certificateId string, pdf []byte) (string, error) {
			objectName := fmt.Sprintf("%s.pdf", certificateId)
			return util.UploadBuffer(ctx, *common.Config.BucketCert, eventId, objectName, pdf, "application/pdf")
		}
	}

	return service
}

func stringOr(value *string, fallback string) string {
	if value != nil && *value != "" {
		return *value
	}
	return fallback
}
