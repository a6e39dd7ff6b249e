package quote_pdf

// bilingual: строка документа на двух языках.
type bilingual struct {
	FR string
	EN string
}

func (b bilingual) String() string {
	return b.FR + " / " + b.EN
}

var (
	titleQuote       = bilingual{"SOUMISSION ET CONTRAT", "QUOTE AND CONTRACT"}
	labelNumber      = bilingual{"No", "No."}
	labelDate        = bilingual{"Date", "Date"}
	labelClient      = bilingual{"Client", "Customer"}
	labelAddress     = bilingual{"Adresse des travaux", "Job address"}
	labelPhone       = bilingual{"Téléphone", "Phone"}
	labelArea        = bilingual{"Superficie", "Area"}
	sectionScope     = bilingual{"Description des travaux", "Scope of work"}
	sectionDuties    = bilingual{"Responsabilités", "Responsibilities"}
	sectionCautions  = bilingual{"Précautions", "Precautions"}
	sectionPrice     = bilingual{"Prix", "Price"}
	sectionWarranty  = bilingual{"Garantie", "Warranty"}
	labelSubtotal    = bilingual{"Sous-total", "Subtotal"}
	labelTPS         = bilingual{"TPS (5 %)", "GST (5%)"}
	labelTVQ         = bilingual{"TVQ (9,975 %)", "QST (9.975%)"}
	labelTotal       = bilingual{"Total", "Total"}
	labelContractor  = bilingual{"Signature de l'entrepreneur", "Contractor signature"}
	labelCustomerSig = bilingual{"Signature du client", "Customer signature"}
	labelSignedDate  = bilingual{"Date", "Date"}
)

var defaultScope = []bilingual{
	{"Enlèvement du revêtement existant jusqu'au pontage", "Removal of the existing roofing down to the deck"},
	{"Inspection et remplacement du pontage endommagé, au besoin", "Inspection and replacement of damaged decking as needed"},
	{"Pose des panneaux de protection", "Installation of protection boards"},
	{"Pose de la membrane de sous-couche", "Installation of the base sheet"},
	{"Pose de la membrane de finition", "Installation of the cap sheet"},
	{"Relevés de parapets et solins", "Parapet upstands and flashing"},
	{"Nettoyage du chantier et disposition des rebuts", "Site cleanup and disposal of debris"},
}

var duties = []bilingual{
	{"L'entrepreneur fournit la main-d'œuvre, les matériaux et l'équipement décrits.", "The contractor supplies the labour, materials and equipment described."},
	{"Le client assure l'accès au toit et à une source d'électricité.", "The customer provides roof access and a power outlet."},
	{"Tout travail supplémentaire fera l'objet d'un avenant écrit.", "Any extra work requires a written change order."},
}

var cautions = []bilingual{
	{"Les travaux sont exécutés par temps sec seulement.", "Work is carried out in dry weather only."},
	{"Le client dégage les abords du bâtiment et protège les biens fragiles.", "The customer clears the building surroundings and protects fragile property."},
	{"Des vibrations et du bruit sont à prévoir pendant l'arrachage.", "Expect vibration and noise during tear-off."},
}

func warrantyText(years int) bilingual {
	return bilingual{
		FR: "Main-d'œuvre garantie " + itoa(years) + " ans contre les infiltrations. Matériaux selon la garantie du fabricant.",
		EN: "Workmanship warranted " + itoa(years) + " years against leaks. Materials per manufacturer warranty.",
	}
}

func validityText(days int) bilingual {
	return bilingual{
		FR: "Cette soumission est valide " + itoa(days) + " jours.",
		EN: "This quote is valid for " + itoa(days) + " days.",
	}
}
