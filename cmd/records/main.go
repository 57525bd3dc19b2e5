package main

import (
	cbohandler "vistos/internal/cbocodes/handler"
	cborepository "vistos/internal/cbocodes/repository"
	cboservice "vistos/internal/cbocodes/service"
	cbovalidator "vistos/internal/cbocodes/validator"
	cityhandler "vistos/internal/cities/handler"
	cityrepository "vistos/internal/cities/repository"
	cityservice "vistos/internal/cities/service"
	cityvalidator "vistos/internal/cities/validator"
	consulatehandler "vistos/internal/consulates/handler"
	consulaterepository "vistos/internal/consulates/repository"
	consulateservice "vistos/internal/consulates/service"
	consulatevalidator "vistos/internal/consulates/validator"
	doclinkhandler "vistos/internal/doclinks/handler"
	doclinkrepository "vistos/internal/doclinks/repository"
	doclinkservice "vistos/internal/doclinks/service"
	relhandler "vistos/internal/relationships/handler"
	relrepository "vistos/internal/relationships/repository"
	relservice "vistos/internal/relationships/service"
	relvalidator "vistos/internal/relationships/validator"
	reqhandler "vistos/internal/requirements/handler"
	reqrepository "vistos/internal/requirements/repository"
	reqservice "vistos/internal/requirements/service"
	reqvalidator "vistos/internal/requirements/validator"
	"vistos/pkg/app"
	"vistos/pkg/config"
	"vistos/pkg/events"
	"vistos/pkg/kafka"
	kafka_config "vistos/pkg/kafka/config"
	"vistos/pkg/locale"
)

const ServiceName = "records"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher, closeProducer := initPublisher(cfg)
	defer closeProducer()

	tr := locale.NewTranslator(cfg.DefaultLocale)
	cfg.Log.Info("Locale configured", "locale", tr.Locale())

	application := app.NewApplication(cfg)
	application.SetApp(
		cityhandler.NewCityHandler(
			cityservice.NewCityService(
				cityrepository.NewMongoCityRepository(cfg),
				cityvalidator.NewCityValidator(tr),
				publisher,
				cfg,
			),
			cfg.Log,
		),
		consulatehandler.NewConsulateHandler(
			consulateservice.NewConsulateService(
				consulaterepository.NewMongoConsulateRepository(cfg),
				consulatevalidator.NewConsulateValidator(tr),
				publisher,
				cfg,
			),
			cfg.Log,
		),
		cbohandler.NewCboCodeHandler(
			cboservice.NewCboCodeService(
				cborepository.NewMongoCboCodeRepository(cfg),
				cbovalidator.NewCboCodeValidator(tr),
				publisher,
				cfg,
			),
			cfg.Log,
		),
		relhandler.NewRelationshipHandler(
			relservice.NewRelationshipService(
				relrepository.NewMongoRelationshipRepository(cfg),
				relvalidator.NewRelationshipValidator(tr),
				publisher,
				cfg,
			),
			cfg.Log,
		),
		reqhandler.NewRequirementHandler(
			reqservice.NewRequirementService(
				reqrepository.NewMongoRequirementRepository(cfg),
				reqvalidator.NewRequirementValidator(tr),
				publisher,
				cfg,
			),
			cfg.Log,
		),
		doclinkhandler.NewDoclinkHandler(
			doclinkservice.NewDoclinkService(
				doclinkrepository.NewMongoDocumentTypeRepository(cfg),
				cfg,
			),
			cfg.Log,
		),
	)

	application.Run()
}

func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Record-change events disabled")
		return events.NopPublisher{}, func() {}
	}

	producer, err := kafka.NewProducer(kafka_config.Load(), cfg.EventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err, "topic", cfg.EventsTopic)
	}
	cfg.Log.Info("Record-change events enabled", "topic", cfg.EventsTopic)

	return events.NewKafkaPublisher(producer, ServiceName), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}
