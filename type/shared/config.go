package shared

type Config struct {
	Environment    *bool     `yaml:"environment" validate:"required"`
	Port           *string   `yaml:"port" validate:"required"`
	BackendURL     *string   `yaml:"backend_url" validate:"required"`
	Cors           []*string `yaml:"cors" validate:"required"`
	JWTSecret      *string   `yaml:"jwt_secret" validate:"required"`
	Postgres       *string   `yaml:"postgres" validate:"required"`
	Mongo          *string   `yaml:"mongo" validate:"required"`
	MongoDatabase  *string   `yaml:"mongo_database" validate:"required"`
	Redis          *string   `yaml:"redis"`
	VerifyHost     *string   `yaml:"verify_host" validate:"required"`
	// MinIO is optional; without it gallery uploads are rejected and
	// certificate PDFs stay on local disk only.
	MinIoEndpoint  *string   `yaml:"minio_endpoint"`
	MinIoAccessKey *string   `yaml:"minio_access_key"`
	MinIoSecretKey *string   `yaml:"minio_secret_key"`
	BucketGallery  *string   `yaml:"bucket_gallery"`
	BucketCert     *string   `yaml:"bucket_certificate"`
	MailHost       *string   `yaml:"mail_host" validate:"required"`
	MailUser       *string   `yaml:"mail_user" validate:"required"`
	MailPass       *string   `yaml:"mail_pass" validate:"required"`

	// Institution branding used as the base layer of certificate settings.
	CollegeName    *string `yaml:"college_name"`
	CollegeTagline *string `yaml:"college_tagline"`
	LogoLeft       *string `yaml:"logo_left"`
	LogoRight      *string `yaml:"logo_right"`

	TemplateDir *string `yaml:"template_dir"`
	OutputDir   *string `yaml:"output_dir"`

	SigningEnabled  *bool   `yaml:"signing_enabled"`
	SigningCertPath *string `yaml:"signing_cert_path"`
	SigningKeyPath  *string `yaml:"signing_key_path"`
}
