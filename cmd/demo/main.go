package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lagossmartbus/booking-core/internal/catalog"
	"github.com/lagossmartbus/booking-core/internal/config"
	"github.com/lagossmartbus/booking-core/internal/models"
	"github.com/lagossmartbus/booking-core/internal/services"
	"github.com/lagossmartbus/booking-core/pkg/validator"
	"github.com/sirupsen/logrus"
)

// Walks one booking end to end: search, trip selection with live quotes,
// seat selection, passenger capture and confirmation.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting Lagos SmartBus booking demo")

	tripCatalog := catalog.NewStaticCatalog()
	locations := catalog.NewLocationDirectory()

	pricingConfig := services.DefaultPricingConfig()
	pricingConfig.PremiumZones = make([]models.LocationID, 0, len(cfg.Pricing.PremiumZones))
	for _, zone := range cfg.Pricing.PremiumZones {
		pricingConfig.PremiumZones = append(pricingConfig.PremiumZones, models.LocationID(zone))
	}

	pricing := services.NewPricingService(pricingConfig, services.SystemClock(), logger)
	seats := services.NewSeatInventoryService(
		services.SeatInventoryConfig{PriceIncrement: cfg.Seating.PriceIncrement},
		services.NewRandomOccupancyProvider(time.Now().UnixNano()),
		logger,
	)
	finalizer := services.NewFinalizerService(services.FinalizerConfig{
		Currency:         cfg.Billing.Currency,
		TaxRate:          cfg.Billing.TaxRate,
		ServiceFee:       cfg.Billing.ServiceFee,
		MinimumLatency:   cfg.Billing.MinimumLatency,
		BookingRefPrefix: cfg.Billing.BookingRefPrefix,
	}, services.SystemClock(), logger)

	workflow := services.NewBookingWorkflowService(tripCatalog, pricing, seats, finalizer, logger)

	criteria := models.SearchCriteria{
		Origin:         "ikeja",
		Destination:    "victoria-island",
		TravelDate:     time.Now().AddDate(0, 0, 10),
		PassengerCount: 2,
	}

	offers, err := workflow.SubmitSearch(criteria)
	if err != nil {
		logger.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("\n%s → %s, %s, %d passenger(s)\n\n",
		locations.Label(criteria.Origin),
		locations.Label(criteria.Destination),
		criteria.TravelDate.Format("Mon 02 Jan 2006"),
		criteria.PassengerCount,
	)

	for _, offer := range offers {
		fmt.Printf("%-20s %s-%s  %-12s ₦%d → ₦%d\n",
			offer.Trip.OperatorName,
			offer.Trip.DepartureTime, offer.Trip.ArrivalTime,
			offer.Trip.ServiceClass,
			offer.Quote.BasePrice, offer.Quote.FinalPrice,
		)
		for _, factor := range offer.Quote.TopFactors(3) {
			fmt.Printf("    %s %+.0f%%\n", factor.Label, factor.PercentChange())
		}
		if extra := len(offer.Quote.Factors) - 3; extra > 0 {
			fmt.Printf("    +%d more factor(s)\n", extra)
		}
	}

	chosen := offers[0].Trip.ID
	if err := workflow.SelectTrip(chosen); err != nil {
		logger.Fatalf("Trip selection failed: %v", err)
	}

	// Pick the first free seats from the front of the bus.
	seatMap := workflow.SeatMap()
	for _, seat := range seatMap.Seats {
		if len(workflow.Draft().Seats) == criteria.PassengerCount {
			break
		}
		if !seat.Occupied {
			if _, err := workflow.ToggleSeat(seat.Number); err != nil {
				logger.Fatalf("Seat selection failed: %v", err)
			}
		}
	}
	if err := workflow.ConfirmSeats(); err != nil {
		logger.Fatalf("Seat confirmation failed: %v", err)
	}
	fmt.Printf("\nSeats: %v (₦%d)\n", []string(workflow.Draft().Seats), workflow.Draft().Seats.Total(seatMap))

	passengers := []models.PassengerDetail{
		{Name: "Adaeze Okafor", Age: 31, Gender: models.GenderFemale},
		{Name: "Chinedu Okafor", Age: 34, Gender: models.GenderMale},
	}
	contact := models.ContactInfo{
		Email: "adaeze.okafor@example.com",
		Phone: "0803 123 4567",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	confirmation, err := workflow.Finalize(ctx, passengers, contact)
	if err != nil {
		logger.Fatalf("Finalize failed: %v", err)
	}

	phones := validator.NewPhoneValidator()
	displayPhone := confirmation.Draft.Contact.Phone
	if formatted, err := phones.Format(displayPhone); err == nil {
		displayPhone = formatted
	}

	fmt.Printf("\nBooking confirmed: %s\n", confirmation.BookingID)
	fmt.Printf("Route:    %s → %s\n", locations.Label(criteria.Origin), locations.Label(criteria.Destination))
	fmt.Printf("Contact:  %s, %s\n", confirmation.Draft.Contact.Email, displayPhone)
	fmt.Printf("Fare:     %d × ₦%d = ₦%d\n",
		confirmation.Breakdown.SeatCount, confirmation.Breakdown.FarePerSeat, confirmation.Breakdown.Subtotal)
	fmt.Printf("VAT:      ₦%d\n", confirmation.Breakdown.Tax)
	fmt.Printf("Fee:      ₦%d\n", confirmation.Breakdown.ServiceFee)
	fmt.Printf("Total:    ₦%d %s\n", confirmation.Breakdown.Total, confirmation.Currency)
}
