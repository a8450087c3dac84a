package wialon

// Token is an auxiliary access token as returned by token/list and token/update.
type Token struct {
	Value       string  `json:"h"`
	App         string  `json:"app"`
	Activation  int64   `json:"at"`
	Duration    int64   `json:"dur"`
	Flags       int64   `json:"fl"`
	Params      string  `json:"p"`
	Items       []int64 `json:"items,omitempty"`
	CreatedAt   int64   `json:"ct,omitempty"`
	LastLoginAt int64   `json:"ll,omitempty"`
	UserID      int64   `json:"userId,omitempty"`
}

// Unit is a single item from a core/search_items response.
type Unit struct {
	ID    int64  `json:"id"`
	Name  string `json:"nm"`
	Class int    `json:"cls"`
	// MeasureUnits is the unit's measurement system (0 metric).
	MeasureUnits int `json:"mu"`
}

// SearchSpec is the "spec" object of a core/search_items request.
type SearchSpec struct {
	ItemsType     string `json:"itemsType"`
	PropName      string `json:"propName"`
	PropValueMask string `json:"propValueMask"`
	SortType      string `json:"sortType"`
}

// SearchParams is the full core/search_items parameter payload.
type SearchParams struct {
	Spec  SearchSpec `json:"spec"`
	Force int        `json:"force"`
	Flags int        `json:"flags"`
	From  int        `json:"from"`
	To    int        `json:"to"`
}

type searchResponse struct {
	TotalItemsCount int    `json:"totalItemsCount"`
	IndexFrom       int    `json:"indexFrom"`
	IndexTo         int    `json:"indexTo"`
	Items           []Unit `json:"items"`
}

type loginParams struct {
	Token string `json:"token"`
	Flags int    `json:"fl"`
}

type loginResponse struct {
	EID  string `json:"eid"`
	Host string `json:"host"`
	User *struct {
		ID   int64  `json:"id"`
		Name string `json:"nm"`
	} `json:"user,omitempty"`
}

type tokenUpdateParams struct {
	CallMode   string `json:"callMode"`
	App        string `json:"app"`
	Activation int64  `json:"at"`
	Duration   int64  `json:"dur"`
	Flags      int64  `json:"fl"`
	Params     string `json:"p"`
}

// errorResponse is the shape of every remote failure body.
type errorResponse struct {
	Error  *int   `json:"error"`
	Reason string `json:"reason"`
}
