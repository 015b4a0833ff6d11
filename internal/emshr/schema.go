package emshr

// Column headings of the EMSHR Lite reference schema.
const (
	ColumnNCDC        = "NCDC"
	ColumnBeginDate   = "BEG_DT"
	ColumnEndDate     = "END_DT"
	ColumnCOOP        = "COOP"
	ColumnWBAN        = "WBAN"
	ColumnICAO        = "ICAO"
	ColumnFAA         = "FAA"
	ColumnNWSLI       = "NWSLI"
	ColumnWMO         = "WMO"
	ColumnTRANS       = "TRANS"
	ColumnGHCND       = "GHCND"
	ColumnStationName = "STATION_NAME"
	ColumnCountryCode = "CC"
	ColumnCountryName = "CTRY_NAME"
	ColumnState       = "ST"
	ColumnCounty      = "COUNTY"
	ColumnLatitude    = "LAT_DEC"
	ColumnLongitude   = "LON_DEC"
	ColumnType        = "TYPE"
)

// DefaultHeadingLine is the heading line of the reference EMSHR Lite file.
const DefaultHeadingLine = "NCDC     BEG_DT   END_DT   COOP  " +
	" WBAN  ICAO FAA   NWSLI" +
	" WMO  TRANS      GHCND       STATION_NAME                                                                                         " +
	"CC CTRY_NAME                           ST COUNTY                              " +
	"CD UTC LAT_DEC   LON_DEC    " +
	"LOC_PREC   LAT_DMS       LON_DMS        EL_GR_FT " +
	"EL_GR_M  EL_AP_FT EL_AP_M  TYPE                                                                                                 " +
	"RELOCATION                     GHCNMLT     IGRA        HPD         "

// DefaultSeparatorLine is the dash line under DefaultHeadingLine.
const DefaultSeparatorLine = "-------- -------- -------- ------" +
	" ----- ---- ----- -----" +
	" ----- ---------- ----------- ----------------------------------------------------------------------------------------------------" +
	" -- ----------------------------------- -- -----------------------------------" +
	" -- --- --------- ----------" +
	" ---------- ------------- -------------- --------" +
	" -------- -------- -------- ----------------------------------------------------------------------------------------------------" +
	" ------------------------------ ----------- ----------- -----------"
