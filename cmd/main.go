package main

import (
	"context"
	"log"

	"nutrilog/config"
	"nutrilog/routes"
	"nutrilog/services"
	"nutrilog/utils"
)

func main() {
	ctx := context.Background()

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := config.InitDB(settings)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	catalog, err := config.LoadCatalog(settings.NutrientsFile)
	if err != nil {
		log.Fatalf("nutrient catalog: %v", err)
	}

	hub := services.NewRealtimeHub()

	var push *services.PushService
	var notifier services.Notifier
	if settings.SNSFCMArn != "" {
		push, err = services.NewPushService(ctx, db, settings.AWSRegion, settings.SNSFCMArn)
		if err != nil {
			log.Fatalf("sns: %v", err)
		}
		notifier = push
	} else {
		log.Println("SNS_FCM_ARN not set, push notifications disabled")
	}
	events := services.NewEventBus(hub, notifier)
	records := services.NewRecordService(db, events)

	var labeler services.Labeler
	if settings.UseRekognition {
		rek, err := services.NewRekognitionService(ctx, settings.AWSRegion)
		if err != nil {
			log.Fatalf("rekognition: %v", err)
		}
		labeler = rek
	}
	estimator, err := services.NewVisionEstimator(services.VisionConfig{
		APIKey:  settings.OpenAIKey,
		BaseURL: settings.OpenAIBaseURL,
		Model:   settings.OpenAIModel,
	}, catalog, labeler)
	if err != nil {
		log.Fatalf("estimator: %v", err)
	}
	uploader, err := utils.NewS3Uploader(ctx, settings.S3Region, settings.S3Bucket, settings.CloudFrontURL)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	auth := services.NewAuthService(db, []byte(settings.JWTSecret))
	dash := services.NewDashboardService(records, catalog, settings.Location)

	var reports *services.ReportService
	if settings.SESEmail != "" {
		mailer, err := utils.NewMailer(ctx, settings.AWSRegion, settings.SESEmail)
		if err != nil {
			log.Fatalf("ses: %v", err)
		}
		reports = services.NewReportService(dash, auth, mailer)
	} else {
		log.Println("SES_EMAIL not set, report e-mail disabled")
	}

	r := routes.SetupRouter(routes.Deps{
		JWTSecret: []byte(settings.JWTSecret),
		Catalog:   catalog,
		Location:  settings.Location,
		Auth:      auth,
		Records:   records,
		Capture:   services.NewCaptureService(estimator, uploader, records),
		Dashboard: dash,
		Analytics: services.NewAnalyticsService(records, catalog, settings.Location),
		Recs:      services.NewRecService(dash),
		Reports:   reports,
		Push:      push,
		Hub:       hub,
	})

	log.Printf("listening on :%s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
