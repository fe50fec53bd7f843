// services/pdf_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// ContractRenderer produces the downloadable rental contract document.
// The binary PDF conversion is delegated to an external renderer; this
// interface only owns the document payload.
type ContractRenderer interface {
	RenderRentalContract(rental *models.Rental) (content []byte, filename string, err error)
}

// HTMLContractRenderer renders the contract as a self-contained HTML
// document ready to be handed to an HTML-to-PDF converter.
type HTMLContractRenderer struct {
	tmpl *template.Template
}

func NewHTMLContractRenderer() *HTMLContractRenderer {
	return &HTMLContractRenderer{
		tmpl: template.Must(template.New("rental-contract").Parse(rentalContractTemplate)),
	}
}

type contractData struct {
	Rental      *models.Rental
	Vehicle     *models.Vehicle
	Client      *models.Client
	Days        int
	GeneratedAt string
}

func (r *HTMLContractRenderer) RenderRentalContract(rental *models.Rental) ([]byte, string, error) {
	data := contractData{
		Rental:      rental,
		Vehicle:     rental.Vehicle,
		Client:      rental.Client,
		Days:        utils.RentalDays(rental.StartDate, rental.EndDate),
		GeneratedAt: time.Now().Format("02/01/2006 15:04:05"),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("rental-contract-%s.html", rental.ID)
	return buf.Bytes(), filename, nil
}

const rentalContractTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Rental Contract</title>
<style>
body { font-family: sans-serif; margin: 40px; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: 8px; }
h2 { margin-top: 28px; }
table { border-collapse: collapse; width: 100%; }
td { padding: 6px 10px; border: 1px solid #ccc; }
td.label { width: 35%; font-weight: bold; background: #f5f5f5; }
.footer { margin-top: 40px; font-size: 12px; color: #777; }
</style>
</head>
<body>
<h1>Vehicle Rental Contract</h1>
<p>Contract reference: {{.Rental.ID}}</p>

<h2>Client</h2>
<table>
<tr><td class="label">Full name</td><td>{{.Client.FullName}}</td></tr>
<tr><td class="label">Document ID</td><td>{{.Client.DocumentID}}</td></tr>
<tr><td class="label">Phone</td><td>{{.Client.Phone}}</td></tr>
<tr><td class="label">Email</td><td>{{.Client.Email}}</td></tr>
<tr><td class="label">Address</td><td>{{.Client.Address}}</td></tr>
</table>

<h2>Vehicle</h2>
<table>
<tr><td class="label">Brand</td><td>{{.Vehicle.Brand}}</td></tr>
<tr><td class="label">Model</td><td>{{.Vehicle.Model}}</td></tr>
<tr><td class="label">Year</td><td>{{.Vehicle.Year}}</td></tr>
<tr><td class="label">License plate</td><td>{{.Vehicle.LicensePlate}}</td></tr>
<tr><td class="label">Fuel type</td><td>{{.Vehicle.FuelType}}</td></tr>
</table>

<h2>Rental Terms</h2>
<table>
<tr><td class="label">Start date</td><td>{{.Rental.StartDate.Format "02/01/2006"}}</td></tr>
<tr><td class="label">End date</td><td>{{.Rental.EndDate.Format "02/01/2006"}}</td></tr>
<tr><td class="label">Duration</td><td>{{.Days}} days</td></tr>
<tr><td class="label">Daily rate</td><td>{{printf "%.2f" .Vehicle.DailyRate}}</td></tr>
<tr><td class="label">Total cost</td><td>{{printf "%.2f" .Rental.TotalCost}}</td></tr>
<tr><td class="label">Status</td><td>{{.Rental.Status}}</td></tr>
</table>

<div class="footer">Generated at {{.GeneratedAt}}</div>
</body>
</html>
`
